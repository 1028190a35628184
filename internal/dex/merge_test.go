package dex

import (
	"reflect"
	"testing"
)

func TestSelectRarest(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"two known collapse to rarest", []string{"Common", "Rare"}, []string{"Rare"}},
		{"duplicates removed first", []string{"Very Common", "Uncommon", "Uncommon"}, []string{"Uncommon"}},
		{"off-scale label preserved", []string{"20%", "Common", "Rare"}, []string{"Rare", "20%"}},
		{"single known left alone", []string{"Common", "Special"}, []string{"Common", "Special"}},
		{"single entry", []string{"Rare"}, []string{"Rare"}},
		{"very rare beats rare", []string{"Rare", "Very Rare"}, []string{"Very Rare"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRarest(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectRarest(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRarityRankCaseInsensitive(t *testing.T) {
	if got := SelectRarest([]string{"COMMON", "very rare"}); !reflect.DeepEqual(got, []string{"very rare"}) {
		t.Errorf("SelectRarest case handling = %v, want [very rare]", got)
	}
}

func TestLevelMerge(t *testing.T) {
	two, five, nine := 2, 5, 9
	if got := minLevel(&five, &two); got == nil || *got != 2 {
		t.Errorf("minLevel(5, 2) = %v, want 2", got)
	}
	if got := minLevel(nil, &nine); got == nil || *got != 9 {
		t.Errorf("minLevel(nil, 9) = %v, want 9", got)
	}
	if got := maxLevel(&five, &nine); got == nil || *got != 9 {
		t.Errorf("maxLevel(5, 9) = %v, want 9", got)
	}
	if got := maxLevel(nil, nil); got != nil {
		t.Errorf("maxLevel(nil, nil) = %v, want nil", got)
	}
}

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	s.add("b")
	s.add("a")
	s.add("b")
	s.add("")
	s.addAll([]string{"c", "a"})
	if got := s.values(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("orderedSet values = %v, want [b a c]", got)
	}
}
