package controller

// TimerToken identifies one scheduled tick. A token is live from issue
// until it is consumed or canceled.
type TimerToken uint64

// timerSet is the single owner of outstanding tick tokens.
type timerSet struct {
	next TimerToken
	live map[TimerToken]struct{}
}

func newTimerSet() timerSet {
	return timerSet{live: map[TimerToken]struct{}{}}
}

func (t *timerSet) issue() TimerToken {
	t.next++
	t.live[t.next] = struct{}{}
	return t.next
}

// consume reports whether tok was live and retires it.
func (t *timerSet) consume(tok TimerToken) bool {
	if _, ok := t.live[tok]; !ok {
		return false
	}
	delete(t.live, tok)
	return true
}

// cancelAll is idempotent.
func (t *timerSet) cancelAll() int {
	n := len(t.live)
	clear(t.live)
	return n
}

func (t *timerSet) pending() int {
	return len(t.live)
}
