// Package assign раздает сменам случайный набор подходящих задач.
// Выбор намеренно недетерминирован и невоспроизводим — утилита
// предназначена для массового заполнения демо-данных, а не для
// сценариев, где важна аудируемость.
package assign

import (
	"context"
	"log"
	"math/rand"

	"github.com/sevnx/shift_backend/internal/repositories"
)

// Число задач на смену в зависимости от роли владельца.
const (
	managerTaskCount  = 4
	employeeTaskCount = 3
)

type Assigner struct {
	shifts *repositories.ShiftRepository
	tasks  *repositories.TaskRepository
	rnd    *rand.Rand
}

// New создает раздатчик. Источник случайности инжектируется, чтобы
// тесты могли зафиксировать seed.
func New(shifts *repositories.ShiftRepository, tasks *repositories.TaskRepository, rnd *rand.Rand) *Assigner {
	return &Assigner{shifts: shifts, tasks: tasks, rnd: rnd}
}

// AssignDate для каждой смены на дату стирает прежние связки и
// назначает случайный поднабор применимых задач: менеджерам 4,
// сотрудникам 3. Возвращает число обновленных смен.
func (a *Assigner) AssignDate(ctx context.Context, date string) (int, error) {
	shifts, err := a.shifts.ListForAssignment(ctx, date)
	if err != nil {
		return 0, err
	}
	log.Printf("👷 Found %d shifts to update for %s", len(shifts), date)

	updated := 0
	for _, shift := range shifts {
		candidates, err := a.tasks.ListApplicable(ctx, shift.ShiftType)
		if err != nil {
			return updated, err
		}

		count := employeeTaskCount
		if shift.Role == "manager" {
			count = managerTaskCount
		}
		selected := a.pick(candidates, count)

		if err := a.shifts.ReplaceTasks(ctx, shift.ShiftID, selected); err != nil {
			return updated, err
		}
		updated++
		log.Printf("  ✅ Assigned %d tasks to %s (%s)", len(selected), shift.EmployeeName, shift.ShiftType)
	}
	return updated, nil
}

// pick перемешивает кандидатов и берет префикс длиной n.
func (a *Assigner) pick(candidates []int, n int) []int {
	shuffled := make([]int, len(candidates))
	copy(shuffled, candidates)
	a.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
