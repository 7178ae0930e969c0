package scheduler

import "github.com/rhyrak/go-timetable/pkg/model"

// FreeDays returns the weekdays, Monday to Friday, without any meeting.
func FreeDays(s *model.Schedule) []model.Day {
	return freeDays(model.OccupancyOf(s))
}

// CommonFreeDays returns the weekdays on which neither schedule has a meeting.
func CommonFreeDays(a, b *model.Schedule) []model.Day {
	return freeDays(model.OccupancyOf(a, b))
}

func freeDays(o *model.Occupancy) []model.Day {
	days := []model.Day{}
	for _, d := range model.Weekdays {
		if !o.DayBusy(d) {
			days = append(days, d)
		}
	}
	return days
}

// FreeBlocks counts the half-hour blocks between 08:00 and 20:00 that are
// free on every day of the schedule.
func FreeBlocks(s *model.Schedule) int {
	return model.OccupancyOf(s).FreeBlocks()
}

// CommonFreeBlocks counts the half-hour blocks that are busy in neither schedule.
func CommonFreeBlocks(a, b *model.Schedule) int {
	return model.OccupancyOf(a, b).FreeBlocks()
}
