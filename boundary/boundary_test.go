/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package boundary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tryx/kind"
)

func receive(t *testing.T, s *Supervisor) Notification {
	t.Helper()
	select {
	case n := <-s.Notifications():
		return n
	case <-time.After(time.Second):
		t.Fatal("no notification within 1s")
		return Notification{}
	}
}

func TestSupervisor_ReportMovesToFailed(t *testing.T) {
	s := NewSupervisor(4)
	require.Equal(t, StateIdle, s.State())
	require.Nil(t, s.Err())

	s.Report(errors.New("listener crashed"), nil)

	assert.Equal(t, StateFailed, s.State())
	require.NotNil(t, s.Err())
	assert.Equal(t, kind.Error, s.Err().Kind)

	n := receive(t, s)
	assert.Same(t, s.Err(), n.Err)
	assert.Nil(t, n.Recover)
}

func TestSupervisor_ReportNilIsNoop(t *testing.T) {
	s := NewSupervisor(1)
	s.Report(nil, nil)

	assert.Equal(t, StateIdle, s.State())
	select {
	case n := <-s.Notifications():
		t.Fatalf("unexpected notification %+v", n)
	default:
	}
}

func TestSupervisor_RecoverSuccessReturnsToIdle(t *testing.T) {
	s := NewSupervisor(1)

	calls := 0
	s.Report(errors.New("connection lost"), func(ctx context.Context) error {
		calls++
		return nil
	})

	n := receive(t, s)
	require.NotNil(t, n.Recover)

	require.Nil(t, n.Recover(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Err())
}

func TestSupervisor_RecoverFailureStaysFailed(t *testing.T) {
	s := NewSupervisor(1)

	retryErr := errors.New("still down")
	s.Report(errors.New("connection lost"), func(ctx context.Context) error {
		return retryErr
	})

	n := receive(t, s)
	e := n.Recover(context.Background())
	require.NotNil(t, e)
	assert.True(t, errors.Is(e, retryErr))

	assert.Equal(t, StateFailed, s.State())
	assert.Same(t, e, s.Err())
}

func TestSupervisor_RecoverPanicIsContained(t *testing.T) {
	s := NewSupervisor(1)
	s.Report(errors.New("boom"), func(ctx context.Context) error {
		panic("retry exploded")
	})

	n := receive(t, s)
	e := n.Recover(context.Background())
	require.NotNil(t, e)
	assert.Equal(t, kind.StringError, e.Kind)
	assert.Equal(t, StateFailed, s.State())
}

func TestSupervisor_Resolve(t *testing.T) {
	s := NewSupervisor(1)
	s.Report(errors.New("stale failure"), nil)
	receive(t, s)

	s.Resolve()
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Err())
}

func TestSupervisor_BufferKeepsNewest(t *testing.T) {
	s := NewSupervisor(1)

	s.Report(errors.New("first"), nil)
	s.Report(errors.New("second"), nil)

	n := receive(t, s)
	assert.Contains(t, n.Err.Message, "second")

	select {
	case extra := <-s.Notifications():
		t.Fatalf("unexpected second notification %v", extra.Err)
	default:
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "recovering", StateRecovering.String())
	assert.Equal(t, "unknown", State(42).String())
}
