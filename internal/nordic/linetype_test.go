package nordic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func padTo80(prefix string, typeChar byte) string {
	line := prefix + strings.Repeat(" ", 79-len(prefix))
	return line + string(typeChar)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		line string
		want LineType
	}{
		{"hypocenter", padTo80(" 1996  6 3 1955 35.5", '1'), LineHypocenter},
		{"macroseismic", padTo80("", '2'), LineMacroseismic},
		{"comment", padTo80(" This is a comment line", '3'), LineComment},
		{"phase", padTo80(" TRO  SZ EP       20 5 32.5", ' '), LinePhase},
		{"waveform", padTo80(" 1996-06-03-2002-18S.TEST__012", '6'), LineWaveform},
		{"error", padTo80(" GAP=348        2.88", 'E'), LineError},
		{"fault plane", padTo80("      93.2      74.8     -48.2", 'F'), LineFaultPlane},
		{"high accuracy", padTo80("", 'H'), LineHighAccuracy},
		{"id", padTo80("", 'I'), LineID},
		{"moment tensor", padTo80("", 'M'), LineMomentTensor},
		{"picture", padTo80("", 'P'), LinePicture},
		{"spectral", padTo80("", 'S'), LineSpectral},
		{"header is unsupported", padTo80(" STAT SP IPHASW", '7'), LineUnsupported},
		{"explosion suffix", strings.Repeat(" ", 77) + "EC3", LineExplosion},
		{"macro suffix", "macro_file.txt" + strings.Repeat(" ", 60) + "MACRO3", LineMacroRef},
		{"short line reads as phase", " TRO  SZ EP       20 5 32.5", LinePhase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.line))
		})
	}
}

func TestClassify_SuffixBeatsTypeColumn(t *testing.T) {
	// An EC3 line's trailing '3' sits in the type column and would misread
	// as a comment without the suffix check.
	line := strings.Repeat(" ", 77) + "EC3"
	assert.Equal(t, LineExplosion, Classify(line))

	macro := strings.Repeat(" ", 74) + "MACRO3"
	assert.Equal(t, LineMacroRef, Classify(macro))
}

func TestLineType_String(t *testing.T) {
	assert.Equal(t, "hypocenter", LineHypocenter.String())
	assert.Equal(t, "phase", LinePhase.String())
	assert.Equal(t, "unknown", fmt.Sprint(LineType(99)))
}
