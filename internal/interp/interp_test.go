package interp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/classes"
	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

type fakeObject struct{ name string }

func (o *fakeObject) Name() string { return o.name }

type fakeClass struct {
	name        string
	instances   *classes.InstanceMap
	failOnState interpstate.State
}

func newFakeClass(name string) *fakeClass {
	return &fakeClass{name: name, instances: classes.NewInstanceMap(nil)}
}

func (c *fakeClass) ClassName() string { return c.name }
func (c *fakeClass) Update(state interpstate.State, obj classes.Object) error {
	if state == c.failOnState {
		return result.New(result.AnyFailures)
	}
	return nil
}
func (c *fakeClass) Enable(obj classes.Object, doSet bool, newEnabled bool) (bool, error) {
	return newEnabled, nil
}
func (c *fakeClass) Serialize(obj classes.Object) (string, error) {
	return c.name + " " + obj.Name(), nil
}
func (c *fakeClass) Destroy(obj classes.Object) error { return nil }
func (c *fakeClass) Compare(a, b classes.Object) int  { return 0 }
func (c *fakeClass) GetName(obj classes.Object) (string, error) {
	return obj.Name(), nil
}
func (c *fakeClass) Duplicate(obj classes.Object, dstNamespace string) (classes.Object, error) {
	return &fakeObject{name: dstNamespace + "/" + obj.Name()}, nil
}
func (c *fakeClass) Instances() *classes.InstanceMap { return c.instances }

type fakeLoader struct {
	called bool
	path   string
	err    error
}

func (l *fakeLoader) Load(ctx context.Context, path string) error {
	l.called = true
	l.path = path
	return l.err
}

func newTestInterp(t *testing.T) (*Interpreter, *classes.Registry, *fakeClass) {
	t.Helper()
	reg := classes.NewRegistry()
	bridge := newFakeClass("bridge")
	require.NoError(t, reg.Register(bridge))
	_, err := bridge.Instances().Add(&fakeObject{name: "br0"}, false)
	require.NoError(t, err)

	ip := New(reg, t.TempDir())
	return ip, reg, bridge
}

func TestAtomicBeginRequiresAutoCommit(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	require.Equal(t, interpstate.Atomic, ip.State())

	err := ip.AtomicBegin("cli")
	require.True(t, errors.Is(err, result.New(result.InvalidStateTransition)))
}

func TestAtomicCommitHappyPath(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	require.NoError(t, ip.AtomicCommit(context.Background()))
	require.Equal(t, interpstate.AutoCommit, ip.State())
}

func TestAtomicAbortReturnsToAutoCommit(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	require.NoError(t, ip.AtomicAbort())
	require.Equal(t, interpstate.AutoCommit, ip.State())
}

func TestAtomicAbortReturnsRawError(t *testing.T) {
	ip, _, bridge := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	bridge.failOnState = interpstate.Aborting

	err := ip.AtomicAbort()
	require.Error(t, err)
	require.Equal(t, interpstate.AutoCommit, ip.State())
	require.Contains(t, ip.Diagnostic(), "failed to abort")
}

func TestAtomicCommitFailureTriggersRollbackAndIsSilenced(t *testing.T) {
	ip, _, bridge := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	bridge.failOnState = interpstate.Committing

	err := ip.AtomicCommit(context.Background())
	require.NoError(t, err)
	require.Equal(t, interpstate.AutoCommit, ip.State())
	require.Contains(t, ip.Diagnostic(), "failed to commit")
}

func TestAtomicRollbackForceFromAtomic(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))

	err := ip.AtomicRollback(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, interpstate.AutoCommit, ip.State())
}

func TestAtomicRollbackWithoutForceFromAtomicIsInvalid(t *testing.T) {
	ip, _, _ := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))

	err := ip.AtomicRollback(context.Background(), false)
	require.True(t, errors.Is(err, result.New(result.InvalidStateTransition)))
}

func TestAutoLoadFallbackInvokesLoaderOnRollbackFailure(t *testing.T) {
	ip, _, bridge := newTestInterp(t)
	loader := &fakeLoader{}
	ip.SetLoader(loader)

	require.NoError(t, ip.AtomicBegin("cli"))
	bridge.failOnState = interpstate.Rollbacking

	err := ip.AtomicRollback(context.Background(), true)
	require.NoError(t, err)
	require.True(t, loader.called)
	require.NotEmpty(t, loader.path)
	require.Equal(t, interpstate.AutoCommit, ip.State())
}

func TestAutoLoadWithoutLoaderIsNotOperational(t *testing.T) {
	ip, _, bridge := newTestInterp(t)
	require.NoError(t, ip.AtomicBegin("cli"))
	bridge.failOnState = interpstate.Rollbacking

	err := ip.AtomicRollback(context.Background(), true)
	require.True(t, errors.Is(err, result.New(result.NotOperational)))
}
