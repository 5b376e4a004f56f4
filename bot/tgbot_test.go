package bot

import (
	"SchoolQL/entity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, `\[ERROR\] store\.persist failed \(code\_1\)\!`, sanitize("[ERROR] store.persist failed (code_1)!"))
	assert.Equal(t, "plain text", sanitize("plain text"))
	assert.Equal(t, "", sanitize(""))
}

func TestSummary(t *testing.T) {
	schools := []entity.School{
		{ID: 1, Population: 100, Status: entity.StatusActive},
		{ID: 2, Population: 50, Status: entity.StatusInactive},
		{ID: 3, Population: 25, Status: entity.StatusActive},
	}
	assert.Equal(t, "Schools: 3 (active 2, inactive 1)\nActive population: 125", Summary(schools))
	assert.Equal(t, "Schools: 0 (active 0, inactive 0)\nActive population: 0", Summary(nil))
}

func TestSendMessageDoesNotBlock(t *testing.T) {
	b := &TgBot{queue: make(chan string, 1)}
	b.SendMessage("first")
	b.SendMessage("second")

	assert.Len(t, b.queue, 1)
	assert.Equal(t, "first", <-b.queue)
}
