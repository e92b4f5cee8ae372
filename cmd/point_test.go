package cmd

import "testing"

func TestBoxIndex(t *testing.T) {
	cases := []struct {
		n, total int
		want     int
		wantErr  bool
	}{
		{1, 8, 0, false},
		{8, 8, 7, false},
		{0, 8, 0, true},
		{-3, 8, 0, true},
		{9, 8, 0, true},
		{1, 0, 0, true},
	}
	for _, c := range cases {
		got, err := boxIndex(c.n, c.total)
		if c.wantErr {
			if err == nil {
				t.Errorf("boxIndex(%d, %d): expected an error", c.n, c.total)
			}
			continue
		}
		if err != nil {
			t.Errorf("boxIndex(%d, %d): %v", c.n, c.total, err)
			continue
		}
		if got != c.want {
			t.Errorf("boxIndex(%d, %d): want %d, got %d", c.n, c.total, c.want, got)
		}
	}
}
