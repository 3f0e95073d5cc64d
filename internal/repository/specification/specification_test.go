package specification

import (
	"testing"

	"robinrocks-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestTaskSpecifications(t *testing.T) {
	task := &entity.Task{
		Title:           "Schedule second viewing",
		RelatedProperty: "123 Ocean View Drive",
		Priority:        entity.PriorityHigh,
		Status:          entity.TaskPending,
	}

	tests := []struct {
		name  string
		specs []Specification[*entity.Task]
		want  bool
	}{
		{name: "no specs", want: true},
		{name: "search title", specs: []Specification[*entity.Task]{TaskSearch{Term: "VIEWING"}}, want: true},
		{name: "search property", specs: []Specification[*entity.Task]{TaskSearch{Term: "ocean"}}, want: true},
		{name: "search miss", specs: []Specification[*entity.Task]{TaskSearch{Term: "contractor"}}, want: false},
		{name: "status all", specs: []Specification[*entity.Task]{TaskByStatus{Status: "all"}}, want: true},
		{name: "status miss", specs: []Specification[*entity.Task]{TaskByStatus{Status: "completed"}}, want: false},
		{name: "combined", specs: []Specification[*entity.Task]{TaskByPriority{Priority: "high"}, TaskByStatus{Status: "pending"}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SatisfiesAll(task, tt.specs...))
		})
	}
}

func TestContractSearchMatchesTenant(t *testing.T) {
	c := &entity.Contract{PropertyAddress: "Hoofdstraat 123", Tenant: "Tech Solutions BV", Area: "Amsterdam"}
	assert.True(t, ContractSearch{Term: "tech"}.IsSatisfiedBy(c))
	assert.True(t, ContractByArea{Area: "Amsterdam"}.IsSatisfiedBy(c))
	assert.False(t, ContractByArea{Area: "Utrecht"}.IsSatisfiedBy(c))
}

func TestFuncAdapter(t *testing.T) {
	even := Func[int](func(n int) bool { return n%2 == 0 })
	assert.True(t, SatisfiesAll(4, Specification[int](even)))
	assert.False(t, SatisfiesAll(3, Specification[int](even)))
}
