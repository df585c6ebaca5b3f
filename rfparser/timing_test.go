package rfparser

import (
	"testing"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

func TestNextPow2(t *testing.T) {
	testCases := []struct {
		in, want uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{64, 64},
		{65, 128},
		{200, 256},
		{1 << 15, 1 << 15},
	}

	for _, tc := range testCases {
		if got := nextPow2(tc.in); got != tc.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRoundUp16(t *testing.T) {
	testCases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 16},
		{16, 16},
		{360, 368},
		{1024, 1024},
	}

	for _, tc := range testCases {
		if got := roundUp16(tc.in); got != tc.want {
			t.Errorf("roundUp16(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNumSubFrames(t *testing.T) {
	ctrl := &mmwave.CtrlConfig{DFEMode: mmwave.DFEModeFrame}
	ctrl.AdvancedFrame.NumSubFrames = 3
	if got := NumSubFrames(ctrl); got != 1 {
		t.Errorf("Legacy frame: expected 1 sub-frame, got %d", got)
	}

	ctrl.DFEMode = mmwave.DFEModeAdvancedFrame
	if got := NumSubFrames(ctrl); got != 3 {
		t.Errorf("Advanced frame: expected 3 sub-frames, got %d", got)
	}
}

func TestSelectSubFrame(t *testing.T) {
	ctrl := &mmwave.CtrlConfig{
		DFEMode: mmwave.DFEModeFrame,
		Frame: mmwave.FrameConfig{
			ChirpStartIdx:    4,
			ChirpEndIdx:      9,
			NumLoops:         16,
			FramePeriodicity: 123,
		},
	}

	sf, err := selectSubFrame(ctrl, 0)
	if err != nil {
		t.Fatalf("selectSubFrame failed: %v", err)
	}
	want := subFrame{chirpStartIdx: 4, numUniqueChirp: 6, numLoops: 16, periodicity: 123}
	if *sf != want {
		t.Errorf("Expected %+v, got %+v", want, *sf)
	}

	// A corrupt count must not index past the sub-frame array.
	ctrl.DFEMode = mmwave.DFEModeAdvancedFrame
	ctrl.AdvancedFrame.NumSubFrames = 6
	for i := range ctrl.AdvancedFrame.SubFrames {
		ctrl.AdvancedFrame.SubFrames[i].NumOfBurst = 1
	}
	if _, err := selectSubFrame(ctrl, mmwave.MaxSubFrames); CodeOf(err) != CodeNumSubFrames {
		t.Errorf("Expected %s, got %v", CodeNumSubFrames, err)
	}
	if _, err := selectSubFrame(ctrl, mmwave.MaxSubFrames-1); err != nil {
		t.Errorf("Expected last sub-frame to be selectable, got %v", err)
	}
}
