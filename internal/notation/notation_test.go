package notation

import "testing"

func TestCompose(t *testing.T) {
	cases := []struct {
		hand, shot, result string
		want               string
	}{
		{"F", "S", "A", "FSA"},
		{"B", "V", "O", "BVO"},
		{"", "Sr", "A", "SrA"},
		{"", "DF", "", "DF"},
		{"F", "", "", "F"},
		{"", "", "N", "N"},
		{"", "", "", ""},
	}
	for _, c := range cases {
		got := Compose(c.hand, c.shot, c.result)
		if got != c.want {
			t.Errorf("Compose(%q,%q,%q): want %q, got %q", c.hand, c.shot, c.result, c.want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		code string
		want Outcome
	}{
		{"FSA", Ace},
		{"SrA", Ace},
		{"BVO", Out},
		{"FSN", Net},
		{"DF", DoubleFault},
		{"FS", Clean},
		{"BSm", Clean},
		{"Dr", Clean},
		{"", Clean},
		// Double-fault code beats a coincidental trailing marker.
		{"DFO", DoubleFault},
		{"DFN", DoubleFault},
		// Markers are found by substring scan, not fixed offset.
		{"BSrO", Out},
		{"FSmN", Net},
	}
	for _, c := range cases {
		got := Classify(c.code)
		if got != c.want {
			t.Errorf("Classify(%q): want %v, got %v", c.code, c.want, got)
		}
	}
}

func TestOutcomeIsError(t *testing.T) {
	if !Out.IsError() || !Net.IsError() {
		t.Error("Out and Net should be errors")
	}
	if Ace.IsError() || Clean.IsError() || DoubleFault.IsError() {
		t.Error("Ace, Clean, and DoubleFault are not errors")
	}
}

func TestExtractShotLabel(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"FSA", "FS"},
		{"BVO", "BV"},
		{"FL", "FL"},
		{"BS", "BS"},
		{"SrA", "Sr"},
		{"DF", "DF"},
		{"FSmN", "FSm"},
		{"Dr", "Dr"},
		// Hand only still labels; a bare result marker leaves nothing.
		{"F", "F"},
		{"A", "Unknown"},
		{"", "Unknown"},
	}
	for _, c := range cases {
		got := ExtractShotLabel(c.code)
		if got != c.want {
			t.Errorf("ExtractShotLabel(%q): want %q, got %q", c.code, c.want, got)
		}
	}
}
