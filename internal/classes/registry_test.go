package classes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/interpstate"
	"github.com/lagopus-go/dsinterp/internal/result"
)

type fakeObject struct {
	name string
}

func (o *fakeObject) Name() string { return o.name }

type fakeClass struct {
	name      string
	instances *InstanceMap
	updates   *[]string
	destroyed *[]string
}

func newFakeClass(name string, updates, destroyed *[]string) *fakeClass {
	return &fakeClass{name: name, instances: NewInstanceMap(nil), updates: updates, destroyed: destroyed}
}

func (c *fakeClass) ClassName() string { return c.name }
func (c *fakeClass) Update(state interpstate.State, obj Object) error {
	*c.updates = append(*c.updates, fmt.Sprintf("%s/%s/%s", c.name, obj.Name(), state))
	return nil
}
func (c *fakeClass) Enable(obj Object, doSet bool, newEnabled bool) (bool, error) {
	return newEnabled, nil
}
func (c *fakeClass) Serialize(obj Object) (string, error) {
	return c.name + " " + obj.Name(), nil
}
func (c *fakeClass) Destroy(obj Object) error {
	*c.destroyed = append(*c.destroyed, c.name+"/"+obj.Name())
	return nil
}
func (c *fakeClass) Compare(a, b Object) int { return 0 }
func (c *fakeClass) GetName(obj Object) (string, error) {
	return obj.Name(), nil
}
func (c *fakeClass) Duplicate(obj Object, dstNamespace string) (Object, error) {
	return &fakeObject{name: dstNamespace + obj.Name()}, nil
}
func (c *fakeClass) Instances() *InstanceMap { return c.instances }

func TestRegisterRejectsUnknownClassName(t *testing.T) {
	r := NewRegistry()
	err := r.Register(newFakeClass("not-a-real-class", new([]string), new([]string)))
	require.Error(t, err)
	require.True(t, errors.Is(err, result.New(result.InvalidArgs)))
}

func TestRegisterRejectsDuplicateAndFindWorks(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newFakeClass("bridge", new([]string), new([]string))))
	err := r.Register(newFakeClass("bridge", new([]string), new([]string)))
	require.True(t, errors.Is(err, result.New(result.AlreadyExists)))

	c, err := r.Find("bridge")
	require.NoError(t, err)
	require.Equal(t, "bridge", c.ClassName())

	_, err = r.Find("missing")
	require.True(t, errors.Is(err, result.New(result.NotFound)))
}

func TestGetAllInOrderFollowsFixedOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newFakeClass("bridge", new([]string), new([]string))))
	require.NoError(t, r.Register(newFakeClass("policer-action", new([]string), new([]string))))
	require.NoError(t, r.Register(newFakeClass("port", new([]string), new([]string))))

	all := r.GetAllInOrder()
	require.Len(t, all, 3)
	require.Equal(t, "policer-action", all[0].ClassName())
	require.Equal(t, "port", all[1].ClassName())
	require.Equal(t, "bridge", all[2].ClassName())

	rev := r.GetAllReverseOrder()
	require.Equal(t, "bridge", rev[0].ClassName())
	require.Equal(t, "policer-action", rev[2].ClassName())
}

func TestUpdateAllWalksEveryInstanceInOrder(t *testing.T) {
	r := NewRegistry()
	var updates []string
	bridge := newFakeClass("bridge", &updates, new([]string))
	port := newFakeClass("port", &updates, new([]string))
	require.NoError(t, r.Register(bridge))
	require.NoError(t, r.Register(port))

	_, err := port.Instances().Add(&fakeObject{name: "port0"}, false)
	require.NoError(t, err)
	_, err = bridge.Instances().Add(&fakeObject{name: "bridge0"}, false)
	require.NoError(t, err)

	require.NoError(t, r.UpdateAll(interpstate.Committing))
	require.Equal(t, []string{"port/port0/Committing", "bridge/bridge0/Committing"}, updates)
}

func TestDestroyAllVisitsReverseOrderAndReportsErrors(t *testing.T) {
	r := NewRegistry()
	var destroyed []string
	bridge := newFakeClass("bridge", new([]string), &destroyed)
	port := newFakeClass("port", new([]string), &destroyed)
	require.NoError(t, r.Register(bridge))
	require.NoError(t, r.Register(port))

	_, err := port.Instances().Add(&fakeObject{name: "port0"}, false)
	require.NoError(t, err)
	_, err = bridge.Instances().Add(&fakeObject{name: "bridge0"}, false)
	require.NoError(t, err)

	errs := r.DestroyAll("")
	require.Empty(t, errs)
	require.Equal(t, []string{"bridge/bridge0", "port/port0"}, destroyed)
	require.Equal(t, 0, bridge.Instances().Size())
	require.Equal(t, 0, port.Instances().Size())
}

func TestDestroyAllScopesToNamespace(t *testing.T) {
	r := NewRegistry()
	var destroyed []string
	bridge := newFakeClass("bridge", new([]string), &destroyed)
	require.NoError(t, r.Register(bridge))

	_, err := bridge.Instances().Add(&fakeObject{name: "dryrun:bridge0"}, false)
	require.NoError(t, err)
	_, err = bridge.Instances().Add(&fakeObject{name: "bridge1"}, false)
	require.NoError(t, err)

	errs := r.DestroyAll("dryrun")
	require.Empty(t, errs)
	require.Equal(t, []string{"bridge/dryrun:bridge0"}, destroyed)
	require.Equal(t, 1, bridge.Instances().Size())
	_, err = bridge.Instances().Find("bridge1")
	require.NoError(t, err)
}

func TestSerializeAllCollectsOneLinePerInstance(t *testing.T) {
	r := NewRegistry()
	queue := newFakeClass("queue", new([]string), new([]string))
	require.NoError(t, r.Register(queue))

	_, err := queue.Instances().Add(&fakeObject{name: "q0"}, false)
	require.NoError(t, err)

	lines, err := r.SerializeAll()
	require.NoError(t, err)
	require.Equal(t, []string{"queue q0"}, lines)
}

func TestDuplicateAllClonesEveryInstanceUnderNamespace(t *testing.T) {
	r := NewRegistry()
	bridge := newFakeClass("bridge", new([]string), new([]string))
	require.NoError(t, r.Register(bridge))

	_, err := bridge.Instances().Add(&fakeObject{name: "bridge0"}, false)
	require.NoError(t, err)

	require.NoError(t, r.DuplicateAll("", "dryrun:"))
	require.Equal(t, 2, bridge.Instances().Size())

	dup, err := bridge.Instances().Find("dryrun:bridge0")
	require.NoError(t, err)
	require.Equal(t, "dryrun:bridge0", dup.Name())
}

func TestDuplicateAllScopesToSourceNamespace(t *testing.T) {
	r := NewRegistry()
	bridge := newFakeClass("bridge", new([]string), new([]string))
	require.NoError(t, r.Register(bridge))

	_, err := bridge.Instances().Add(&fakeObject{name: "prod:bridge0"}, false)
	require.NoError(t, err)
	_, err = bridge.Instances().Add(&fakeObject{name: "staging:bridge0"}, false)
	require.NoError(t, err)

	require.NoError(t, r.DuplicateAll("prod", "dryrun:"))
	require.Equal(t, 3, bridge.Instances().Size())

	_, err = bridge.Instances().Find("dryrun:prod:bridge0")
	require.NoError(t, err)
	_, err = bridge.Instances().Find("dryrun:staging:bridge0")
	require.True(t, errors.Is(err, result.New(result.NotFound)))
}

func TestGetObjectsReturnsCountAndNotFound(t *testing.T) {
	r := NewRegistry()
	bridge := newFakeClass("bridge", new([]string), new([]string))
	require.NoError(t, r.Register(bridge))

	_, err := bridge.Instances().Add(&fakeObject{name: "bridge0"}, false)
	require.NoError(t, err)
	_, err = bridge.Instances().Add(&fakeObject{name: "bridge1"}, false)
	require.NoError(t, err)

	objs, err := r.GetObjects("bridge", true)
	require.NoError(t, err)
	require.Len(t, objs, 2)

	_, err = r.GetObjects("missing", false)
	require.True(t, errors.Is(err, result.New(result.NotFound)))
}
