package ai

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestMarshalUnmarshal(t *testing.T) {
	cases := []struct {
		in  Config
		out string
	}{
		{Config{Algorithm: Minimax}, `{"Algorithm":"minimax","Debug":0,"ReferenceCounts":false}`},
		{Config{Algorithm: AlphaBeta, ReferenceCounts: true}, `{"Algorithm":"alphabeta","Debug":0,"ReferenceCounts":true}`},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, e := json.Marshal(&tc.in)
			if e != nil {
				t.Fatalf("Marshal(): %v", e)
			}
			if string(out) != tc.out {
				t.Fatalf("Marshal() = %q != %q", out, tc.out)
			}

			var back Config
			e = json.Unmarshal(out, &back)
			if e != nil {
				t.Fatalf("Unmarshal(%q): %v", out, e)
			}
			if back != tc.in {
				t.Errorf("roundtrip = %+v != %+v", back, tc.in)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := []struct {
		in   string
		want Algorithm
		ok   bool
	}{
		{"1", Minimax, true},
		{"minimax", Minimax, true},
		{" MM ", Minimax, true},
		{"2", AlphaBeta, true},
		{"alpha-beta", AlphaBeta, true},
		{"AB", AlphaBeta, true},
		{"3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAlgorithm(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseAlgorithm(%q): err=%v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	var a Algorithm
	if err := json.Unmarshal([]byte(`"negamax"`), &a); err == nil {
		t.Errorf("Unmarshal accepted an unknown algorithm: %v", a)
	}
}
