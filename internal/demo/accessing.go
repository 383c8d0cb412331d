package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/beankit/di"
)

type Address struct {
	City  string
	State string
}

func (a *Address) String() string {
	return fmt.Sprintf("Address[city=%s, state=%s]", a.City, a.State)
}

type Person struct {
	FirstName string
	LastName  string
	Age       int
	Address   *Address
}

func (p *Person) String() string {
	return fmt.Sprintf("Person[firstName=%s, lastName=%s, age=%d, address=%v]", p.FirstName, p.LastName, p.Age, p.Address)
}

// newPerson builds a person from (firstName, lastName, age, address).
func newPerson(args di.Args) (*Person, error) {
	first, err := di.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	last, err := di.Arg[string](args, 1)
	if err != nil {
		return nil, err
	}
	age, err := di.Arg[int](args, 2)
	if err != nil {
		return nil, err
	}
	addr, err := di.Arg[*Address](args, 3)
	if err != nil {
		return nil, err
	}
	return &Person{FirstName: first, LastName: last, Age: age, Address: addr}, nil
}

// personDeps lists the constructor dependencies of newPerson. An empty
// qualifier picks the primary address.
func personDeps(addressQualifier string) []di.Dependency {
	return []di.Dependency{
		di.Dep[string]().Qualified("firstName"),
		di.Dep[string]().Qualified("lastName"),
		di.Dep[int](),
		di.Dep[*Address]().Qualified(addressQualifier),
	}
}

var accessingOutput = []string{
	"fullName",
	"personInArg",
	"personUsingFunctionCall",
	"personWithQualifierSecondaryAddress",
	"personWithQualifierOtherAddress",
}

func accessingBeans() Scenario {
	return Scenario{
		Name:        "accessing",
		Description: "beans built from other beans, picked by primary or qualifier",
		Register: func(c *di.Container, _ io.Writer) error {
			return registerAll(c,
				di.Define[string]("firstName").Value("Rahul").Register,
				di.Define[string]("lastName").Value("Patel").Register,
				di.Define[int]("age").Value(25).Register,
				di.Define[string]("fullName").
					Factory(di.Ctor2(func(first, last string) (string, error) {
						return first + " " + last, nil
					}), di.Dep[string]().Qualified("firstName"), di.Dep[string]().Qualified("lastName")).
					Register,
				di.Define[*Address]("primaryAddress").Value(&Address{City: "Surat", State: "Guj"}).Primary().Register,
				di.Define[*Address]("secondaryAddress").Value(&Address{City: "Ahmedabad", State: "Guj"}).Qualifier("secondary_address").Register,
				di.Define[*Address]("otherAddress").Value(&Address{City: "Jaunpur", State: "Uttar Pradesh"}).Qualifier("other").Register,
				di.Define[*Person]("personInArg").Factory(newPerson, personDeps("")...).Register,
				di.Define[*Person]("personUsingFunctionCall").
					Factory(di.Ctor0(func() (*Person, error) {
						return &Person{FirstName: "Rahul", LastName: "Patel", Age: 25, Address: &Address{City: "Surat", State: "Guj"}}, nil
					})).
					Register,
				di.Define[*Person]("personWithQualifierSecondaryAddress").Factory(newPerson, personDeps("secondary_address")...).Register,
				di.Define[*Person]("personWithQualifierOtherAddress").Factory(newPerson, personDeps("other")...).Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			for _, id := range accessingOutput {
				v, err := c.GetByName(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %v\n", id, v)
			}

			primary, err := di.Resolve[*Address](c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Primary address: %v\n", primary)
			return nil
		},
	}
}
