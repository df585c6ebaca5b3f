package rfparser

import "github.com/jrwynneiii/mmwrf/mmwave"

// subFrame is the slice of the control configuration one Parse call works on.
type subFrame struct {
	chirpStartIdx  uint16
	numUniqueChirp int
	numLoops       uint16
	periodicity    uint32 // 5 ns per LSB
}

// NumSubFrames returns 1 in legacy frame mode and the configured count in
// advanced frame mode.
func NumSubFrames(ctrl *mmwave.CtrlConfig) uint8 {
	if ctrl.DFEMode == mmwave.DFEModeAdvancedFrame {
		return ctrl.AdvancedFrame.NumSubFrames
	}
	return 1
}

func selectSubFrame(ctrl *mmwave.CtrlConfig, subFrameIdx uint8) (*subFrame, error) {
	numSubFrames := NumSubFrames(ctrl)
	if subFrameIdx >= numSubFrames || subFrameIdx >= mmwave.MaxSubFrames {
		return nil, newError(CodeNumSubFrames, "sub-frame %d requested, %d configured", subFrameIdx, numSubFrames)
	}

	if ctrl.DFEMode != mmwave.DFEModeAdvancedFrame {
		frame := &ctrl.Frame
		numChirps := int(frame.ChirpEndIdx) - int(frame.ChirpStartIdx) + 1
		return &subFrame{
			chirpStartIdx:  frame.ChirpStartIdx,
			numUniqueChirp: max(numChirps, 0),
			numLoops:       frame.NumLoops,
			periodicity:    frame.FramePeriodicity,
		}, nil
	}

	cfg := &ctrl.AdvancedFrame.SubFrames[subFrameIdx]
	if cfg.NumOfBurst != 1 {
		return nil, newError(CodeNonOneNumOfBurstForAdvFrame, "sub-frame %d has %d bursts", subFrameIdx, cfg.NumOfBurst)
	}

	return &subFrame{
		chirpStartIdx:  cfg.ChirpStartIdx,
		numUniqueChirp: int(cfg.NumOfChirps),
		numLoops:       cfg.NumLoops,
		periodicity:    cfg.SubFramePeriodicity,
	}, nil
}
