// Copyright 2025 Vitalstats Analytics
// This file is part of Mortsim, a cohort simulation toolkit for vital statistics
//
// Mortsim is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Mortsim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Mortsim. If not, see <http://www.gnu.org/licenses/>.

// Package resultdb is a generated GoMock package.
package resultdb

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockResultDB is a mock of ResultDB interface.
type MockResultDB struct {
	ctrl     *gomock.Controller
	recorder *MockResultDBMockRecorder
	isgomock struct{}
}

// MockResultDBMockRecorder is the mock recorder for MockResultDB.
type MockResultDBMockRecorder struct {
	mock *MockResultDB
}

// NewMockResultDB creates a new mock instance.
func NewMockResultDB(ctrl *gomock.Controller) *MockResultDB {
	mock := &MockResultDB{ctrl: ctrl}
	mock.recorder = &MockResultDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResultDB) EXPECT() *MockResultDBMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockResultDB) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockResultDBMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockResultDB)(nil).Close))
}

// Summaries mocks base method.
func (m *MockResultDB) Summaries(period int) ([]StratumRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Summaries", period)
	ret0, _ := ret[0].([]StratumRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Summaries indicates an expected call of Summaries.
func (mr *MockResultDBMockRecorder) Summaries(period any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Summaries", reflect.TypeOf((*MockResultDB)(nil).Summaries), period)
}
