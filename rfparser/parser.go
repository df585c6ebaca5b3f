// Package rfparser derives the signal-processing parameters of one radar
// sub-frame from the raw front-end configuration and rejects configurations
// the hardware cannot run.
//
// Every check short-circuits: Parse either returns a fully populated
// OutParams or an *Error naming the first violated constraint, never both.
package rfparser

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/jrwynneiii/mmwrf/mmwave"
)

// Parser holds the platform description used to resolve antenna geometry
// and hardware limits. It is immutable and safe for concurrent use.
type Parser struct {
	platform mmwave.Platform
	logger   *log.Logger
}

type Option func(*Parser)

// WithLogger traces each derivation stage at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New returns a parser for the given platform, or the default platform when
// platform is nil.
func New(platform *mmwave.Platform, opts ...Option) *Parser {
	if platform == nil {
		platform = mmwave.DefaultPlatform()
	}
	p := &Parser{
		platform: *platform,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Platform() mmwave.Platform {
	return p.platform
}

// ParseConfig derives the parameters of one sub-frame on the default platform.
func ParseConfig(subFrameIdx uint8, open *mmwave.OpenConfig, ctrl *mmwave.CtrlConfig, adcBuf *mmwave.ADCBufConfig, rfFreqScaleFactor float64, bpmEnabled bool) (*OutParams, error) {
	return New(nil).Parse(subFrameIdx, open, ctrl, adcBuf, rfFreqScaleFactor, bpmEnabled)
}

// Parse derives the parameters of sub-frame subFrameIdx. rfFreqScaleFactor
// converts frequency register values to Hz and is platform specific; with
// bpmEnabled, chirps enabling several transmitters are read as BPM-MIMO
// rather than simultaneous transmission.
func (p *Parser) Parse(subFrameIdx uint8, open *mmwave.OpenConfig, ctrl *mmwave.CtrlConfig, adcBuf *mmwave.ADCBufConfig, rfFreqScaleFactor float64, bpmEnabled bool) (*OutParams, error) {
	logger := p.logger.With("subframe", subFrameIdx)

	sf, err := selectSubFrame(ctrl, subFrameIdx)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected sub-frame", "chirpStart", sf.chirpStartIdx, "chirps", sf.numUniqueChirp, "loops", sf.numLoops)

	chirps, err := resolveChirps(ctrl, sf)
	if err != nil {
		return nil, err
	}
	profile := chirps.profile
	logger.Debug("resolved profile", "profile", profile.ProfileID, "txMasks", chirps.txMasks)

	if err = checkSlope(profile); err != nil {
		return nil, err
	}
	if err = checkADCFormat(open, adcBuf); err != nil {
		return nil, err
	}

	topo, err := resolveAntennas(&p.platform, &open.Channel, chirps.txMasks, bpmEnabled)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved antennas",
		"rx", topo.rxOrder[:topo.numRx],
		"tx", topo.txOrder[:topo.numTx],
		"oneTxPerChirp", topo.oneTxPerChirp,
		"azim", topo.numAzim,
		"elev", topo.numElev)

	t, err := computeTiming(profile, sf, topo, rfFreqScaleFactor)
	if err != nil {
		return nil, err
	}

	thresh, err := chirpThreshold(&p.platform, adcBuf, t, topo.numRx)
	if err != nil {
		return nil, err
	}
	logger.Debug("derived timing", "rangeBins", t.numRangeBins, "dopplerBins", t.numDopplerBins, "chirpThreshold", thresh)

	return &OutParams{
		ValidProfileIdx:              profile.ProfileID,
		ValidProfileHasOneTxPerChirp: topo.oneTxPerChirp,
		NumChirpsPerChirpEvent:       thresh,
		NumADCSamples:                profile.NumADCSamples,
		NumRxAntennas:                topo.numRx,
		RxAntOrder:                   topo.rxOrder,
		TxAntOrder:                   topo.txOrder,
		NumTxAntennas:                topo.numTx,
		NumVirtualAntennas:           topo.numVirtual(),
		NumVirtualAntAzim:            topo.numAzim,
		NumVirtualAntElev:            topo.numElev,
		NumRangeBins:                 t.numRangeBins,
		NumChirpsPerFrame:            t.numChirpsPerFrame,
		ADCBufChanDataSize:           t.adcBufChanDataSize,
		NumDopplerChirps:             t.numDopplerChirps,
		NumDopplerBins:               t.numDopplerBins,
		RangeStep:                    t.rangeStep,
		DopplerStep:                  t.dopplerStep,
		FramePeriod:                  t.framePeriod,
		ChirpInterval:                t.chirpInterval,
		Bandwidth:                    t.bandwidth,
		CenterFreq:                   t.centerFreq,
	}, nil
}

// ParseAll derives every configured sub-frame in order and stops at the
// first one that fails.
func (p *Parser) ParseAll(open *mmwave.OpenConfig, ctrl *mmwave.CtrlConfig, adcBuf *mmwave.ADCBufConfig, rfFreqScaleFactor float64, bpmEnabled bool) ([]*OutParams, error) {
	n := NumSubFrames(ctrl)
	if n == 0 {
		return nil, newError(CodeNumSubFrames, "no sub-frames configured")
	}

	out := make([]*OutParams, 0, n)
	for i := uint8(0); i < n; i++ {
		params, err := p.Parse(i, open, ctrl, adcBuf, rfFreqScaleFactor, bpmEnabled)
		if err != nil {
			return nil, fmt.Errorf("sub-frame %d: %w", i, err)
		}
		out = append(out, params)
	}
	return out, nil
}
