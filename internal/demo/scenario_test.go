package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/beankit/bootstrap"
	"github.com/kbukum/beankit/config"
	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/logger"
)

func runScenario(t *testing.T, name, eagerOrder string) string {
	t.Helper()
	s, err := Lookup(name)
	require.NoError(t, err)

	cfg := config.AppConfig{
		ServiceConfig: config.ServiceConfig{Name: "beandemo", Version: "test"},
		Container:     config.ContainerConfig{EagerOrder: eagerOrder},
	}
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, s, &out,
		bootstrap.WithLogger(logger.Nop()), bootstrap.WithoutSummary()))
	return out.String()
}

// assertOrder checks that every needle occurs in text, each after the previous one.
func assertOrder(t *testing.T, text string, needles ...string) {
	t.Helper()
	pos := 0
	for _, n := range needles {
		i := strings.Index(text[pos:], n)
		if !assert.GreaterOrEqual(t, i, 0, "%q not found after offset %d in:\n%s", n, pos, text) {
			return
		}
		pos += i + len(n)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"helloworld", "shapes", "scope", "initialization", "injection", "accessing", "stereotype", "cdi"}, Names())
	assert.Len(t, All(), len(Names()))

	_, err := Lookup("missing")
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestHelloWorld(t *testing.T) {
	out := runScenario(t, "helloworld", "")
	assert.Contains(t, out, "Bean value: Hello World")
}

func TestShapes(t *testing.T) {
	out := runScenario(t, "shapes", "")
	assertOrder(t, out,
		"Starting calculation",
		"Running shape: Rectangle",
		"Calculating area of rectangle",
		"Primary shape: Circle",
		"Calculation completed",
	)
}

func TestScope(t *testing.T) {
	out := runScenario(t, "scope", "")
	assert.Equal(t, scopeLookups, strings.Count(out, "SingletonBean#1 "))
	assert.NotContains(t, out, "SingletonBean#2")
	assertOrder(t, out, "PrototypeBean#1 ", "PrototypeBean#2 ", "PrototypeBean#3 ", "PrototypeBean#4 ")
}

func TestInitialization(t *testing.T) {
	out := runScenario(t, "initialization", "")
	assertOrder(t, out,
		"EagerInitialization initialized",
		"Application initialization has been completed",
		"Calling SayHello on EagerInitialization",
		"LazyInitialization initialized",
		"Calling SayHello on LazyInitialization",
	)
	assert.Equal(t, 1, strings.Count(out, "LazyInitialization initialized"))
}

func TestInjection(t *testing.T) {
	out := runScenario(t, "injection", "")
	assertOrder(t, out,
		"from field injection", "name=Karan",
		"from constructor injection", "name=Lucky",
		"from setter injection", "name=Ravi",
	)
}

func TestAccessingBeans(t *testing.T) {
	for _, order := range []string{"registration", "dependency"} {
		t.Run(order, func(t *testing.T) {
			out := runScenario(t, "accessing", order)
			assert.Contains(t, out, "fullName: Rahul Patel")
			assert.Contains(t, out, "personInArg: Person[firstName=Rahul, lastName=Patel, age=25, address=Address[city=Surat, state=Guj]]")
			assert.Contains(t, out, "personUsingFunctionCall: Person[firstName=Rahul, lastName=Patel, age=25, address=Address[city=Surat, state=Guj]]")
			assert.Contains(t, out, "personWithQualifierSecondaryAddress: Person[firstName=Rahul, lastName=Patel, age=25, address=Address[city=Ahmedabad, state=Guj]]")
			assert.Contains(t, out, "personWithQualifierOtherAddress: Person[firstName=Rahul, lastName=Patel, age=25, address=Address[city=Jaunpur, state=Uttar Pradesh]]")
			assert.Contains(t, out, "Primary address: Address[city=Surat, state=Guj]")
		})
	}
}

func TestStereotype(t *testing.T) {
	out := runScenario(t, "stereotype", "")
	assertOrder(t, out,
		"Employee by ID: Employee[id=1, name=Savita, department=CE]",
		"Added new employee: Employee[id=10, name=Rahul, department=CE]",
		"Updated employee: Employee[id=2, name=Rahul, department=CE]",
		"Deleted employee: Employee[id=4, name=Alpesh, department=CE]",
	)
}

func TestCDI(t *testing.T) {
	out := runScenario(t, "cdi", "")
	assertOrder(t, out, "memberSource\n", "memberService\n", "Name:Rahul", "Name:Sahil")
}

func TestEmployeeRepositoryErrors(t *testing.T) {
	repo := NewEmployeeRepository()

	_, err := repo.FindByID(42)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	_, err = repo.Add(Employee{ID: 1, Name: "Again"})
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))

	_, err = repo.Add(Employee{ID: 0, Name: "Nobody"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id: must be at least 1")

	_, err = repo.RemoveByID(99)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	_, err = repo.Update(Employee{ID: 99})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	updated, err := repo.Update(Employee{ID: 3, Department: "IT"})
	require.NoError(t, err)
	assert.Equal(t, Employee{ID: 3, Name: "Hiten", Department: "IT"}, updated)
	assert.Len(t, repo.All(), 4)
}
