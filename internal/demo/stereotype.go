package demo

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/kbukum/beankit/di"
	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/validation"
)

type Employee struct {
	ID         int    `json:"id" validate:"min=1"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

func (e Employee) String() string {
	return fmt.Sprintf("Employee[id=%d, name=%s, department=%s]", e.ID, e.Name, e.Department)
}

// EmployeeRepository keeps employees in memory.
type EmployeeRepository struct {
	mu   sync.RWMutex
	data []Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{data: []Employee{
		{ID: 1, Name: "Savita", Department: "CE"},
		{ID: 2, Name: "Hemali", Department: "CE"},
		{ID: 3, Name: "Hiten", Department: "CE"},
		{ID: 4, Name: "Alpesh", Department: "CE"},
	}}
}

func (r *EmployeeRepository) index(id int) int {
	return slices.IndexFunc(r.data, func(e Employee) bool { return e.ID == id })
}

func (r *EmployeeRepository) FindByID(id int) (Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return Employee{}, errors.NotFound("employee", fmt.Sprint(id))
	}
	return r.data[i], nil
}

func (r *EmployeeRepository) Add(emp Employee) (Employee, error) {
	if err := validation.Validate(emp); err != nil {
		return Employee{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(emp.ID) >= 0 {
		return Employee{}, errors.InvalidInput("id", fmt.Sprintf("employee %d already exists", emp.ID))
	}
	r.data = append(r.data, emp)
	return emp, nil
}

// Update replaces non-empty fields of the employee with emp.ID.
func (r *EmployeeRepository) Update(emp Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(emp.ID)
	if i < 0 {
		return Employee{}, errors.NotFound("employee", fmt.Sprint(emp.ID))
	}
	if emp.Name != "" {
		r.data[i].Name = emp.Name
	}
	if emp.Department != "" {
		r.data[i].Department = emp.Department
	}
	return r.data[i], nil
}

func (r *EmployeeRepository) RemoveByID(id int) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return Employee{}, errors.NotFound("employee", fmt.Sprint(id))
	}
	emp := r.data[i]
	r.data = slices.Delete(r.data, i, i+1)
	return emp, nil
}

func (r *EmployeeRepository) All() []Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.data)
}

// EmployeeService delegates to the repository.
type EmployeeService struct {
	repo *EmployeeRepository
}

func (s *EmployeeService) Get(id int) (Employee, error) { return s.repo.FindByID(id) }
func (s *EmployeeService) Add(e Employee) (Employee, error) { return s.repo.Add(e) }
func (s *EmployeeService) Update(e Employee) (Employee, error) { return s.repo.Update(e) }
func (s *EmployeeService) Remove(id int) (Employee, error) { return s.repo.RemoveByID(id) }
func (s *EmployeeService) All() []Employee { return s.repo.All() }

// EmployeeComponent is the entry point used by the scenario.
type EmployeeComponent struct {
	svc *EmployeeService
}

func (c *EmployeeComponent) Get(id int) (Employee, error) { return c.svc.Get(id) }
func (c *EmployeeComponent) Add(e Employee) (Employee, error) { return c.svc.Add(e) }
func (c *EmployeeComponent) Update(e Employee) (Employee, error) { return c.svc.Update(e) }
func (c *EmployeeComponent) Remove(id int) (Employee, error) { return c.svc.Remove(id) }
func (c *EmployeeComponent) All() []Employee { return c.svc.All() }

func stereotype() Scenario {
	return Scenario{
		Name:        "stereotype",
		Description: "repository, service and component wired through constructors",
		Register: func(c *di.Container, _ io.Writer) error {
			return registerAll(c,
				di.Define[*EmployeeRepository]("employeeRepository").
					Factory(di.Ctor0(func() (*EmployeeRepository, error) { return NewEmployeeRepository(), nil })).
					Register,
				di.Define[*EmployeeService]("employeeService").
					Factory(di.Ctor1(func(r *EmployeeRepository) (*EmployeeService, error) {
						return &EmployeeService{repo: r}, nil
					}), di.Dep[*EmployeeRepository]()).
					Register,
				di.Define[*EmployeeComponent]("employeeComponent").
					Factory(di.Ctor1(func(s *EmployeeService) (*EmployeeComponent, error) {
						return &EmployeeComponent{svc: s}, nil
					}), di.Dep[*EmployeeService]()).
					Register,
			)
		},
		Run: func(_ context.Context, c *di.Container, out io.Writer) error {
			comp, err := di.Resolve[*EmployeeComponent](c)
			if err != nil {
				return err
			}

			steps := []struct {
				label string
				do    func() (Employee, error)
			}{
				{"Employee by ID", func() (Employee, error) { return comp.Get(1) }},
				{"Added new employee", func() (Employee, error) { return comp.Add(Employee{ID: 10, Name: "Rahul", Department: "CE"}) }},
				{"Updated employee", func() (Employee, error) { return comp.Update(Employee{ID: 2, Name: "Rahul", Department: "CE"}) }},
				{"Deleted employee", func() (Employee, error) { return comp.Remove(4) }},
			}
			for _, step := range steps {
				emp, err := step.do()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %v\n", step.label, emp)
				fmt.Fprintf(out, "All employees: %v\n", comp.All())
			}
			return nil
		},
	}
}
