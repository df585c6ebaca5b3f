package rfparser

import (
	"math"
	"math/bits"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

// chirpSet is the profile and per-chirp Tx masks of a sub-frame, in
// emission order.
type chirpSet struct {
	profile *mmwave.ProfileConfig
	txMasks []uint8
}

type topology struct {
	rxOrder [mmwave.NumRxChannels]uint8
	txOrder [mmwave.NumTxAntennas]uint8
	numRx   uint8
	numTx   uint8

	oneTxPerChirp bool
	numAzim       uint8
	numElev       uint8
}

func (t *topology) numVirtual() uint8 {
	return t.numTx * t.numRx
}

func resolveChirps(ctrl *mmwave.CtrlConfig, sf *subFrame) (*chirpSet, error) {
	if sf.numUniqueChirp > mmwave.MaxUniqueChirps {
		return nil, newError(CodeNumUniqueChirpsMoreThan32, "%d unique chirps", sf.numUniqueChirp)
	}
	if sf.numUniqueChirp == 0 {
		return nil, newError(CodeChirpNotConfigured, "sub-frame has no chirps")
	}

	var profileID uint8
	masks := make([]uint8, 0, sf.numUniqueChirp)
	for i := 0; i < sf.numUniqueChirp; i++ {
		idx := int(sf.chirpStartIdx) + i
		if idx > math.MaxUint16 {
			return nil, newError(CodeChirpNotConfigured, "chirp index %d out of range", idx)
		}

		chirp, ok := ctrl.Chirp(uint16(idx))
		if !ok {
			return nil, newError(CodeChirpNotConfigured, "chirp %d is not configured", idx)
		}
		if i > 0 && chirp.ProfileID != profileID {
			return nil, newError(CodeMultipleProfiles, "chirp %d uses profile %d, chirp %d uses profile %d",
				sf.chirpStartIdx, profileID, idx, chirp.ProfileID)
		}

		profileID = chirp.ProfileID
		masks = append(masks, chirp.TxEnable)
	}

	profile, ok := ctrl.Profile(profileID)
	if !ok {
		return nil, newError(CodeChirpNotConfigured, "profile %d is not configured", profileID)
	}

	return &chirpSet{profile: profile, txMasks: masks}, nil
}

func resolveAntennas(p *mmwave.Platform, ch *mmwave.ChannelConfig, txMasks []uint8, bpmEnabled bool) (*topology, error) {
	topo := &topology{}
	for i := range topo.rxOrder {
		topo.rxOrder[i] = AntennaUnused
	}
	for i := range topo.txOrder {
		topo.txOrder[i] = AntennaUnused
	}

	if extra := ch.RxChannelEn &^ p.RxMask(); extra != 0 {
		return nil, newError(CodeNumVirtualAntennas, "rx mask %#x enables channels missing on %s", ch.RxChannelEn, p.Name)
	}
	for _, rx := range p.RxOrder[:p.NumRxChannels] {
		if ch.RxChannelEn&(1<<rx) != 0 {
			topo.rxOrder[topo.numRx] = rx
			topo.numRx++
		}
	}

	allowed := p.TxMask() & ch.TxChannelEn
	topo.oneTxPerChirp = true
	var union uint8
	for i, m := range txMasks {
		if m == 0 || m&^allowed != 0 {
			return nil, newError(CodeNumTxAntennas, "chirp %d tx mask %#x, allowed %#x", i, m, allowed)
		}
		if bits.OnesCount8(m) != 1 {
			topo.oneTxPerChirp = false
		}
		union |= m
	}

	switch {
	case topo.oneTxPerChirp:
		// TDM-MIMO: the Doppler stage demultiplexes by chirp position, so
		// the order is the emission order.
		var seen uint8
		for i, m := range txMasks {
			if seen&m != 0 {
				return nil, newError(CodeNumTxAntennas, "chirp %d repeats tx%d within the sub-frame", i, bits.TrailingZeros8(m))
			}
			seen |= m
			topo.txOrder[topo.numTx] = uint8(bits.TrailingZeros8(m))
			topo.numTx++
		}
	case bpmEnabled:
		for _, tx := range p.TxOrder[:p.NumTxAntennas] {
			if union&(1<<tx) != 0 {
				topo.txOrder[topo.numTx] = tx
				topo.numTx++
			}
		}
	default:
		// Simultaneous transmission acts as a single steered transmitter.
		for _, tx := range p.TxOrder[:p.NumTxAntennas] {
			if union&(1<<tx) != 0 {
				topo.txOrder[0] = tx
				topo.numTx = 1
				break
			}
		}
	}

	if topo.numTx == 0 || topo.numTx > p.NumTxAntennas {
		return nil, newError(CodeNumTxAntennas, "%d tx antennas, %s supports %d", topo.numTx, p.Name, p.NumTxAntennas)
	}
	if n := topo.numVirtual(); n == 0 || n > p.MaxVirtualAntennas {
		return nil, newError(CodeNumVirtualAntennas, "%d virtual antennas, %s supports %d", n, p.Name, p.MaxVirtualAntennas)
	}

	if !topo.oneTxPerChirp && !bpmEnabled {
		topo.numAzim = topo.numRx
		return topo, nil
	}
	for _, tx := range topo.txOrder[:topo.numTx] {
		if p.TxRows[tx] == mmwave.RowElevation {
			topo.numElev += topo.numRx
		} else {
			topo.numAzim += topo.numRx
		}
	}

	return topo, nil
}
