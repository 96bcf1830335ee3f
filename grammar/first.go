package grammar

type firstEntry struct {
	terms map[int]struct{}
	empty bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		terms: map[int]struct{}{},
		empty: false,
	}
}

func (e *firstEntry) add(term int) bool {
	if _, ok := e.terms[term]; ok {
		return false
	}
	e.terms[term] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for term := range target.terms {
		added := e.add(term)
		if added {
			changed = true
		}
	}
	return changed
}

type firstSet struct {
	set []*firstEntry // by rule ID
}

func genFirstSet(alts [][][]int) *firstSet {
	fst := &firstSet{
		set: make([]*firstEntry, len(alts)),
	}
	for i := range fst.set {
		fst.set[i] = newFirstEntry()
	}

	for {
		changed := false
		for rule, ruleAlts := range alts {
			for _, alt := range ruleAlts {
				e := fst.first(alt, 0)
				if fst.set[rule].mergeExceptEmpty(e) {
					changed = true
				}
				if e.empty && fst.set[rule].addEmpty() {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return fst
}

// first computes the FIRST set of the tail of an alternative beginning at
// head, against the entries accumulated so far.
func (fst *firstSet) first(alt []int, head int) *firstEntry {
	entry := newFirstEntry()
	for _, sym := range alt[head:] {
		if sym >= 0 {
			entry.add(sym)
			return entry
		}

		re := fst.set[^sym]
		entry.mergeExceptEmpty(re)
		if !re.empty {
			return entry
		}
	}
	entry.addEmpty()
	return entry
}
