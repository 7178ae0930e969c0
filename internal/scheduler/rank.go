package scheduler

import (
	"fmt"
	"slices"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Order selects how single-student results are ranked.
type Order string

const (
	OrderSearch     Order = "search"
	OrderFreeDays   Order = "free-days"
	OrderFreeBlocks Order = "free-blocks"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case "", OrderSearch:
		return OrderSearch, nil
	case OrderFreeDays, OrderFreeBlocks:
		return o, nil
	}
	return "", fmt.Errorf("unknown order %q", s)
}

type scored[T any] struct {
	item  T
	score int
}

// sortByScore sorts items by descending score, keeping search order on ties.
func sortByScore[T any](items []T, score func(T) int) {
	ranked := make([]scored[T], len(items))
	for i, it := range items {
		ranked[i] = scored[T]{item: it, score: score(it)}
	}
	slices.SortStableFunc(ranked, func(a, b scored[T]) int {
		return b.score - a.score
	})
	for i := range ranked {
		items[i] = ranked[i].item
	}
}

// SortSchedules ranks single-student schedules in place.
func SortSchedules(schedules []*model.Schedule, order Order) {
	switch order {
	case OrderFreeDays:
		sortByScore(schedules, func(s *model.Schedule) int { return len(FreeDays(s)) })
	case OrderFreeBlocks:
		sortByScore(schedules, FreeBlocks)
	}
}

// SortJointSchedules ranks joint schedules by shared free blocks, most first.
func SortJointSchedules(schedules []*model.JointSchedule) {
	sortByScore(schedules, func(j *model.JointSchedule) int {
		return CommonFreeBlocks(j.Person1, j.Person2)
	})
}

// Page returns the zero-based page of items and whether more pages follow.
func Page[T any](items []T, page int, size int) ([]T, bool) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(items) {
		return []T{}, false
	}
	end := min(start+size, len(items))
	return items[start:end], end < len(items)
}
