package coach

import "testing"

func TestProfileStateMemoRoundtrip(t *testing.T) {
	st := newProfileState()
	key := memoKey{consumedKcal: 1500, targetKcal: 2000}

	if _, ok := st.lookup(key); ok {
		t.Fatal("empty state must miss")
	}

	gen := st.begin()
	res := &Result{Status: StatusOK, Kind: "on_track"}
	if !st.commit(gen, key, res) {
		t.Fatal("current generation must commit")
	}

	got, ok := st.lookup(key)
	if !ok || got != res {
		t.Error("expected the committed result back")
	}
}

func TestSupersededEvaluationNeverMemoizes(t *testing.T) {
	st := newProfileState()
	key := memoKey{consumedKcal: 1500, targetKcal: 2000}

	older := st.begin()
	newer := st.begin()

	stale := &Result{Status: StatusOK, Kind: "food"}
	if st.commit(older, key, stale) {
		t.Fatal("an overtaken evaluation must not memoize")
	}
	if _, ok := st.lookup(key); ok {
		t.Fatal("stale result leaked into the memo")
	}

	fresh := &Result{Status: StatusOK, Kind: "on_track"}
	if !st.commit(newer, key, fresh) {
		t.Fatal("the newest evaluation must memoize")
	}
	if got, _ := st.lookup(key); got != fresh {
		t.Error("expected the fresh result in the memo")
	}
}

func TestMemoResetsWhenFull(t *testing.T) {
	st := newProfileState()

	for i := 0; i < 70; i++ {
		gen := st.begin()
		key := memoKey{consumedKcal: float64(i), targetKcal: 2000}
		st.commit(gen, key, &Result{Status: StatusOK})
	}

	if len(st.memo) > 64 {
		t.Errorf("memo grew unbounded: %d entries", len(st.memo))
	}
}
