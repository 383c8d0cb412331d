package di

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/beankit/errors"
)

func TestRegister_DuplicateID(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, Define[*Address]("address").Value(&Address{City: "Surat"}).Register(c))

	err := Define[*Address]("address").Value(&Address{City: "Ahmedabad"}).Register(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, "address", errors.DetailOf(err, "id"))
	assert.Equal(t, []string{"address"}, c.Names())
}

func TestRegister_InvalidDescriptor(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
	}{
		{"empty id", Define[*Address]("").Value(&Address{}).Descriptor()},
		{"malformed id", Define[*Address]("has space").Value(&Address{}).Descriptor()},
		{"missing factory", Descriptor{ID: "x", Type: TypeOf[*Address]()}},
		{"missing type", Descriptor{ID: "x", Factory: func(Args) (any, error) { return &Address{}, nil }}},
		{"unknown scope", Descriptor{ID: "x", Type: TypeOf[*Address](), Scope: Scope(9),
			Factory: func(Args) (any, error) { return &Address{}, nil }}},
		{"provides unimplemented interface", Define[*Address]("x").Value(&Address{}).
			Provides(TypeOf[fmt.Stringer]()).Descriptor()},
		{"malformed qualifier", Define[*Address]("x").Value(&Address{}).Qualifier("a b").Descriptor()},
		{"prototype backed by a shared pointer", Define[*Address]("x").Value(&Address{}).Prototype().Descriptor()},
		{"nil dependency type", Define[*Person]("x").
			Factory(func(Args) (*Person, error) { return &Person{}, nil }, Dependency{}).Descriptor()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContainer(t)
			err := c.Register(tc.desc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDescriptor)
			assert.Empty(t, c.Names())
		})
	}
}

func TestRegister_PrototypeValue(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, Define[string]("greeting").Value("hello").Prototype().Register(c))
	require.NoError(t, Define[*Address]("fresh").Value(&Address{}).
		Factory(func(Args) (*Address, error) { return &Address{}, nil }).
		Prototype().Register(c))
	require.NoError(t, c.Startup(context.Background(), InRegistrationOrder))

	first, err := c.GetByName("fresh")
	require.NoError(t, err)
	second, err := c.GetByName("fresh")
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	err = Define[*Address]("late").Value(&Address{}).Prototype().Register(newTestContainer(t))
	require.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), "scope: a fixed value of reference type cannot back a prototype")
}

func TestRegister_TwoPrimariesForOneType(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, Define[*Address]("home").Value(&Address{}).Primary().Register(c))

	err := Define[*Address]("office").Value(&Address{}).Primary().Register(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
	assert.Equal(t, []string{"home", "office"}, errors.DetailOf(err, "candidates"))
}

func TestRegister_PrimaryConflictThroughProvides(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, Define[*Circle]("circle").Value(&Circle{}).
		Provides(TypeOf[Shape]()).Primary().Register(c))

	err := Define[*Rectangle]("rectangle").Value(&Rectangle{}).
		Provides(TypeOf[Shape]()).Primary().Register(c)
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestRegister_AfterStartupAndClose(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Startup(context.Background(), InRegistrationOrder))

	err := Define[*Address]("late").Value(&Address{}).Register(c)
	assert.ErrorIs(t, err, ErrAlreadyStarted)

	require.NoError(t, c.Close())
	err = Define[*Address]("later").Value(&Address{}).Register(c)
	assert.ErrorIs(t, err, ErrContainerClosed)
}

func TestNames_RegistrationOrder(t *testing.T) {
	c := newTestContainer(t)
	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, nodeDef(id, nil).Register(c))
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, c.Names())
}

func TestProvides_LookupByInterface(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, Define[*Circle]("circle").Value(&Circle{}).Provides(TypeOf[Shape]()).Register(c))
	require.NoError(t, c.Startup(context.Background(), InRegistrationOrder))

	shape, err := Resolve[Shape](c)
	require.NoError(t, err)
	assert.Equal(t, "circle", shape.Draw())

	circle, err := Resolve[*Circle](c)
	require.NoError(t, err)
	assert.Same(t, circle, shape)
}
