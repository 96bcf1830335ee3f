package grammar

type followEntry struct {
	terms map[int]struct{}
}

func newFollowEntry() *followEntry {
	return &followEntry{
		terms: map[int]struct{}{},
	}
}

func (e *followEntry) add(term int) bool {
	if _, ok := e.terms[term]; ok {
		return false
	}
	e.terms[term] = struct{}{}
	return true
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for term := range fst.terms {
			added := e.add(term)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for term := range flw.terms {
			added := e.add(term)
			if added {
				changed = true
			}
		}
	}

	return changed
}

type followSet struct {
	set []*followEntry // by rule ID
}

func genFollowSet(alts [][][]int, fst *firstSet, startRule int, eofSymbol int) *followSet {
	flw := &followSet{
		set: make([]*followEntry, len(alts)),
	}
	for i := range flw.set {
		flw.set[i] = newFollowEntry()
	}
	flw.set[startRule].add(eofSymbol)

	for {
		changed := false
		for rule, ruleAlts := range alts {
			for _, alt := range ruleAlts {
				for i, sym := range alt {
					if sym >= 0 {
						continue
					}

					rest := fst.first(alt, i+1)
					if flw.set[^sym].merge(rest, nil) {
						changed = true
					}
					if rest.empty && flw.set[^sym].merge(nil, flw.set[rule]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return flw
}
