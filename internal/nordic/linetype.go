package nordic

import "strings"

// LineType tags one raw bulletin line with its record type.
type LineType int

const (
	// LineUnsupported covers type characters outside the format contract,
	// such as the '7' column-header line real bulletins carry. These are
	// skipped, never an error.
	LineUnsupported LineType = iota
	LineHypocenter               // type 1
	LineMacroseismic             // type 2, recognized but unmodeled
	LineComment                  // type 3
	LinePhase                    // blank type column
	LineWaveform                 // type 6
	LineError                    // type E
	LineFaultPlane               // type F
	LineHighAccuracy             // type H, recognized but unmodeled
	LineID                       // type I, recognized but unmodeled
	LineMomentTensor             // type M, recognized but unmodeled
	LinePicture                  // type P, recognized but unmodeled
	LineSpectral                 // type S, recognized but unmodeled
	LineExplosion                // trailing "EC3" marker
	LineMacroRef                 // trailing "MACRO3" marker
)

var lineTypeNames = map[LineType]string{
	LineUnsupported:  "unsupported",
	LineHypocenter:   "hypocenter",
	LineMacroseismic: "macroseismic",
	LineComment:      "comment",
	LinePhase:        "phase",
	LineWaveform:     "waveform",
	LineError:        "error",
	LineFaultPlane:   "fault_plane",
	LineHighAccuracy: "high_accuracy",
	LineID:           "id",
	LineMomentTensor: "moment_tensor",
	LinePicture:      "picture",
	LineSpectral:     "spectral",
	LineExplosion:    "explosion",
	LineMacroRef:     "macro_ref",
}

func (t LineType) String() string {
	if name, ok := lineTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// typeColumn is the 0-indexed position of the record-type character.
const typeColumn = 79

// Classify determines the record type of one non-blank line. The two
// suffix markers are checked before the type column; their trailing "3"
// would otherwise misread as a comment line.
func Classify(line string) LineType {
	trimmed := strings.TrimRight(line, "\r\n")
	if strings.HasSuffix(trimmed, "EC3") {
		return LineExplosion
	}
	if strings.HasSuffix(trimmed, "MACRO3") {
		return LineMacroRef
	}
	if len(trimmed) <= typeColumn {
		// Lines short of the type column are phase lines with trailing
		// blanks stripped by transport.
		return LinePhase
	}
	switch trimmed[typeColumn] {
	case '1':
		return LineHypocenter
	case '2':
		return LineMacroseismic
	case '3':
		return LineComment
	case ' ':
		return LinePhase
	case '6':
		return LineWaveform
	case 'E':
		return LineError
	case 'F':
		return LineFaultPlane
	case 'H':
		return LineHighAccuracy
	case 'I':
		return LineID
	case 'M':
		return LineMomentTensor
	case 'P':
		return LinePicture
	case 'S':
		return LineSpectral
	default:
		return LineUnsupported
	}
}
