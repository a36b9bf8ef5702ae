// Package symmetrymock provides a gomock-based test double for
// symmetry.Oracle, written by hand in the shape mockgen would generate
// (this repo has no go:generate step invoking mockgen, since running the
// Go toolchain is out of scope here, but the generated-code shape is worth
// keeping so a future `mockgen -source=internal/symmetry/oracle.go` run
// reproduces it almost verbatim). internal/solver's propagate tests use
// this to assert runESBPHook calls the oracle with the exact sequence of
// literals spec.md §4.2 step 1 describes, rather than only checking the
// resulting assignment.
package symmetrymock

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// MockOracle is a mock of the symmetry.Oracle interface.
type MockOracle struct {
	ctrl     *gomock.Controller
	recorder *MockOracleMockRecorder
}

// MockOracleMockRecorder is the mock recorder for MockOracle.
type MockOracleMockRecorder struct {
	mock *MockOracle
}

// NewMockOracle creates a new mock instance.
func NewMockOracle(ctrl *gomock.Controller) *MockOracle {
	mock := &MockOracle{ctrl: ctrl}
	mock.recorder = &MockOracleMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockOracle) EXPECT() *MockOracleMockRecorder {
	return m.recorder
}

// UpdateNotify mocks base method.
func (m *MockOracle) UpdateNotify(p lit.Lit) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "UpdateNotify", p)
}

// UpdateNotify indicates an expected call of UpdateNotify.
func (mr *MockOracleMockRecorder) UpdateNotify(p interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateNotify", reflect.TypeOf((*MockOracle)(nil).UpdateNotify), p)
}

// UpdateCancel mocks base method.
func (m *MockOracle) UpdateCancel(level int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "UpdateCancel", level)
}

// UpdateCancel indicates an expected call of UpdateCancel.
func (mr *MockOracleMockRecorder) UpdateCancel(level interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCancel", reflect.TypeOf((*MockOracle)(nil).UpdateCancel), level)
}

// ClauseToInject mocks base method.
func (m *MockOracle) ClauseToInject() ([]lit.Lit, []symmetry.GenID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClauseToInject")
	lits, _ := ret[0].([]lit.Lit)
	justifiedBy, _ := ret[1].([]symmetry.GenID)
	ok, _ := ret[2].(bool)
	return lits, justifiedBy, ok
}

// ClauseToInject indicates an expected call of ClauseToInject.
func (mr *MockOracleMockRecorder) ClauseToInject() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClauseToInject", reflect.TypeOf((*MockOracle)(nil).ClauseToInject))
}

var _ symmetry.Oracle = (*MockOracle)(nil)
