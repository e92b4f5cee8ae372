// Package notation interprets the short shot codes written into point
// boxes: an optional hand marker, a shot-type code, and an optional
// result marker, concatenated in that order (e.g. "FSA" = forehand
// stroke ace, "BVO" = backhand volley out).
package notation

import "strings"

// Hand markers.
const (
	HandForehand = "F"
	HandBackhand = "B"
)

// Shot-type codes.
const (
	ShotStroke      = "S"
	ShotVolley      = "V"
	ShotReturn      = "R"
	ShotChop        = "C"
	ShotPush        = "P"
	ShotLob         = "L"
	ShotServe       = "Sr"
	ShotDoubleFault = "DF"
	ShotSmash       = "Sm"
	ShotDrop        = "Dr"
)

// Result markers.
const (
	ResultAce = "A"
	ResultOut = "O"
	ResultNet = "N"
)

// ShotCodes lists every recognized shot-type code, in entry-pad order.
var ShotCodes = []string{
	ShotStroke, ShotVolley, ShotReturn, ShotChop, ShotPush,
	ShotLob, ShotServe, ShotDoubleFault, ShotSmash, ShotDrop,
}

// Outcome classifies what a notation code says about how the point ended.
type Outcome int

const (
	Clean Outcome = iota // winner, no error involved
	Ace
	Out
	Net
	DoubleFault
)

func (o Outcome) String() string {
	switch o {
	case Ace:
		return "ace"
	case Out:
		return "out"
	case Net:
		return "net"
	case DoubleFault:
		return "double fault"
	default:
		return "clean"
	}
}

// IsError reports whether the outcome is an unforced error (out or net).
func (o Outcome) IsError() bool {
	return o == Out || o == Net
}

// Compose builds a notation code from its parts. All parts are optional
// individually, but if every part is empty the result is "" and the
// caller must not record a point.
func Compose(hand, shot, result string) string {
	return hand + shot + result
}

// Classify maps a notation code to its outcome. The checks are
// substring scans rather than fixed-position parses because the
// hand/shot portion varies in length (1–2 characters). The double-fault
// code is checked first so that a coincidental trailing marker cannot
// shadow it. The unanchored scan means a hand/shot combination that
// happens to contain a marker letter would be misclassified; none of
// the current shot codes do, and the scan is kept as-is.
func Classify(code string) Outcome {
	switch {
	case strings.Contains(code, ShotDoubleFault):
		return DoubleFault
	case strings.Contains(code, ShotServe+ResultAce) || strings.HasSuffix(code, ResultAce):
		return Ace
	case strings.Contains(code, ResultOut):
		return Out
	case strings.Contains(code, ResultNet):
		return Net
	default:
		return Clean
	}
}

// ExtractShotLabel reduces a notation code to the label used for
// per-shot-type tallies: the hand marker (if any) plus the shot code,
// with the trailing result marker stripped. "Unknown" when nothing is
// left to label.
func ExtractShotLabel(code string) string {
	hand := ""
	rest := code
	if strings.HasPrefix(rest, HandForehand) || strings.HasPrefix(rest, HandBackhand) {
		hand = rest[:1]
		rest = rest[1:]
	}
	if strings.HasSuffix(rest, ResultAce) || strings.HasSuffix(rest, ResultOut) || strings.HasSuffix(rest, ResultNet) {
		rest = rest[:len(rest)-1]
	}
	label := hand + rest
	if label == "" {
		return "Unknown"
	}
	return label
}
