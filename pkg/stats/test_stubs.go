package stats

import (
	"github.com/outcal/outcal/pkg/calendar_sync"
)

type resultProviderStub struct {
	result calendar_sync.Result
	ok     bool
}

func newResultProviderStub() *resultProviderStub {
	return &resultProviderStub{}
}

func (s *resultProviderStub) set(result calendar_sync.Result) {
	s.result = result
	s.ok = true
}

func (s *resultProviderStub) Latest() (calendar_sync.Result, bool) {
	return s.result, s.ok
}

func (s *resultProviderStub) reset() {
	s.result = calendar_sync.Result{}
	s.ok = false
}
