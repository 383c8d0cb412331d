package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine_Defaults(t *testing.T) {
	d := Define[*Address]("address").Value(&Address{}).Descriptor()
	assert.Equal(t, Singleton, d.Scope)
	assert.Equal(t, Eager, d.Init)
	assert.Equal(t, TypeOf[*Address](), d.Type)
	assert.False(t, d.Primary)
	assert.Empty(t, d.Qualifier)
}

func TestDefine_DescriptorIsCopy(t *testing.T) {
	b := Define[*Person]("person").
		Factory(Ctor1(func(a *Address) (*Person, error) { return &Person{Address: a}, nil }), Dep[*Address]())
	d := b.Descriptor()
	d.Dependencies[0] = Dep[string]()

	assert.Equal(t, TypeOf[*Address](), b.Descriptor().Dependencies[0].Type)
}

func TestDependency_String(t *testing.T) {
	assert.Equal(t, "*di.Address", Dep[*Address]().String())
	assert.Equal(t, "*di.Address(home)", Dep[*Address]().Qualified("home").String())
	assert.Equal(t, "<nil>", Dependency{}.String())
}

func TestSetterAndField(t *testing.T) {
	p := &Person{}
	addr := &Address{City: "Surat"}

	setter := Setter("address", func(p *Person, a *Address) { p.Address = a })
	assert.Equal(t, SetterInjection, setter.Kind)
	assert.Equal(t, TypeOf[*Address](), setter.Type)
	require.NoError(t, setter.Apply(p, addr))
	assert.Same(t, addr, p.Address)

	field := Field("name", func(p *Person) *string { return &p.Name }).Qualified("firstName")
	assert.Equal(t, FieldInjection, field.Kind)
	assert.Equal(t, "firstName", field.Qualifier)
	require.NoError(t, field.Apply(p, "Sumit"))
	assert.Equal(t, "Sumit", p.Name)

	assert.ErrorIs(t, setter.Apply(&Address{}, addr), ErrTypeMismatch)
	assert.ErrorIs(t, field.Apply(p, 42), ErrTypeMismatch)
}

func TestArgAndCtors(t *testing.T) {
	args := Args{"Sumit", &Address{City: "Surat"}, 7}

	name, err := Arg[string](args, 0)
	require.NoError(t, err)
	assert.Equal(t, "Sumit", name)

	_, err = Arg[int](args, 0)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = Arg[string](args, 5)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	build := Ctor3(func(n string, a *Address, age int) (*Person, error) {
		return &Person{Name: n, Address: a}, nil
	})
	p, err := build(args)
	require.NoError(t, err)
	assert.Equal(t, "Surat", p.Address.City)

	_, err = Ctor2(func(a *Address, n string) (*Person, error) { return &Person{}, nil })(args)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	zero, err := Ctor0(func() (int, error) { return 3, nil })(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, zero)
}

func TestTypedHook_Mismatch(t *testing.T) {
	d := Define[*Person]("person").
		Value(&Person{}).
		PostConstruct(func(*Person) error { return nil }).
		Descriptor()
	assert.ErrorIs(t, d.PostConstruct(&Address{}), ErrTypeMismatch)
	assert.NoError(t, d.PostConstruct(&Person{}))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "singleton", Singleton.String())
	assert.Equal(t, "prototype", Prototype.String())
	assert.Equal(t, "lazy", Lazy.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "allow_setter", AllowSetterCycles.String())
	assert.Equal(t, "dependency", InDependencyOrder.String())
	assert.Equal(t, "failed", ContainerFailed.String())
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseCyclePolicy("allow_setter")
	require.NoError(t, err)
	assert.Equal(t, AllowSetterCycles, p)

	p, err = ParseCyclePolicy("")
	require.NoError(t, err)
	assert.Equal(t, RejectCycles, p)

	_, err = ParseCyclePolicy("sometimes")
	assert.Error(t, err)

	e, err := ParseEagerPolicy("Dependency")
	require.NoError(t, err)
	assert.Equal(t, InDependencyOrder, e)

	_, err = ParseEagerPolicy("random")
	assert.Error(t, err)
}
