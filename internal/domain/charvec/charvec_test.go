package charvec

import (
	"testing"
)

func TestBuildVocabulary_RankByFrequency(t *testing.T) {
	v := BuildVocabulary("ab", []string{"ab", "ac", "xy"})
	if v.Size() != 5 {
		t.Fatalf("size = %d, want 5", v.Size())
	}
	idx, ok := v.Index('a')
	if !ok || idx != 0 {
		t.Errorf("index('a') = (%d, %v), want (0, true)", idx, ok)
	}
	if v.Count(0) != 3 {
		t.Errorf("count('a') = %d, want 3", v.Count(0))
	}
	// b appears twice (list + center), the rest once in first-seen order.
	want := []rune{'a', 'b', 'c', 'x', 'y'}
	got := v.Chars()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chars = %q, want %q", string(got), string(want))
		}
	}
	if _, ok := v.Index('z'); ok {
		t.Error("expected 'z' to be absent")
	}
}

func TestBuildVocabulary_StableTies(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := BuildVocabulary("", []string{"dcba"})
		if string(v.Chars()) != "dcba" {
			t.Fatalf("chars = %q, want first-seen order %q", string(v.Chars()), "dcba")
		}
	}
}

func TestVectorize_PresenceOnly(t *testing.T) {
	v := BuildVocabulary("aaab", nil)
	bm := v.Vectorize("aaab")
	if bm.GetCardinality() != 2 {
		t.Errorf("cardinality = %d, want 2", bm.GetCardinality())
	}
}

func TestVectorize_UnknownFallsBackToZero(t *testing.T) {
	v := BuildVocabulary("ab", nil)
	bm := v.Vectorize("q")
	if !bm.Contains(0) || bm.GetCardinality() != 1 {
		t.Errorf("expected {0}, got %v", bm.ToArray())
	}
}

func TestDistance_SymmetricAndBounded(t *testing.T) {
	texts := []string{"感冒咳嗽引起嗓子沙哑", "我是感冒引起的嗓子沙哑", "hello", "", "abc"}
	center := "感冒第二天了，嗓子完全沙哑了，怎么办"
	v := BuildVocabulary(center, texts)
	c := v.Vectorize(center)

	if d := Distance(c, c); d != 0 {
		t.Errorf("distance(center, center) = %d, want 0", d)
	}
	for _, s := range texts {
		bm := v.Vectorize(s)
		ab, ba := Distance(c, bm), Distance(bm, c)
		if ab != ba {
			t.Errorf("%q: distance not symmetric: %d vs %d", s, ab, ba)
		}
		if ab > uint64(v.Size()) {
			t.Errorf("%q: distance %d exceeds vocabulary %d", s, ab, v.Size())
		}
	}
}

func TestEngine_EndToEnd(t *testing.T) {
	e := NewEngine()
	e.SetCenter("ab")
	e.SetList([]string{"xy", "ab", "ac"})

	got := e.Distances()
	want := []uint64{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("distances = %v, want %v", got, want)
			break
		}
	}
	if e.Vocabulary().Size() != 5 {
		t.Errorf("vocabulary size = %d, want 5", e.Vocabulary().Size())
	}
}

func TestEngine_InvalidatesOnInputChange(t *testing.T) {
	e := NewEngine()
	e.SetCenter("ab")
	e.SetList([]string{"ab"})
	if d := e.Distances(); d[0] != 0 {
		t.Fatalf("distance = %d, want 0", d[0])
	}

	e.SetCenter("cd")
	if d := e.Distances(); d[0] != 4 {
		t.Errorf("after SetCenter distance = %d, want 4", d[0])
	}

	e.SetList([]string{"cd", "ce"})
	d := e.Distances()
	if len(d) != 2 || d[0] != 0 || d[1] != 2 {
		t.Errorf("after SetList distances = %v, want [0 2]", d)
	}
}

func TestEngine_ReturnsCopy(t *testing.T) {
	e := NewEngine()
	e.SetCenter("ab")
	e.SetList([]string{"ac"})
	d := e.Distances()
	d[0] = 99
	if e.Distances()[0] != 2 {
		t.Error("mutating the returned slice changed the engine state")
	}
}

func TestEngine_EmptyList(t *testing.T) {
	e := NewEngine()
	e.SetCenter("ab")
	if d := e.Distances(); len(d) != 0 {
		t.Errorf("distances = %v, want empty", d)
	}
}
