package model

// Free time is counted in half-hour blocks whose start instants run from
// 08:00 to 20:00 inclusive.
const BlockMinutes = 30

const (
	BlockDayStart Clock = 8 * 60
	BlockDayEnd   Clock = 20 * 60
)

// Occupancy is a week grid of half-hour blocks marking when a student is in class.
type Occupancy struct {
	grid     [][]bool
	busyDays [DaysInWeek]bool
	blocks   int
}

// NewOccupancy creates an empty week grid.
func NewOccupancy() *Occupancy {
	o := &Occupancy{blocks: int(BlockDayEnd-BlockDayStart)/BlockMinutes + 1}
	o.grid = make([][]bool, DaysInWeek)
	for i := range o.grid {
		o.grid[i] = make([]bool, o.blocks)
	}
	return o
}

// OccupancyOf marks every slot of the given schedules on one grid.
func OccupancyOf(schedules ...*Schedule) *Occupancy {
	o := NewOccupancy()
	for _, s := range schedules {
		for _, slot := range s.Slots() {
			o.PlaceSlot(slot)
		}
	}
	return o
}

// BlockCount returns the number of blocks per day.
func (o *Occupancy) BlockCount() int {
	return o.blocks
}

// BlockStart returns the start instant of block i.
func (o *Occupancy) BlockStart(i int) Clock {
	return BlockDayStart + Clock(i*BlockMinutes)
}

// IsAvailable checks if the block is free on the given day.
func (o *Occupancy) IsAvailable(day Day, block int) bool {
	if !day.Valid() || block < 0 || block >= o.blocks {
		return false
	}
	return !o.grid[day][block]
}

// PlaceSlot marks the day as busy, and every block whose start instant lies
// in [slot.Start, slot.End).
func (o *Occupancy) PlaceSlot(slot TimeSlot) {
	if !slot.Day.Valid() {
		return
	}
	o.busyDays[slot.Day] = true
	for i := 0; i < o.blocks; i++ {
		at := o.BlockStart(i)
		if slot.Start <= at && at < slot.End {
			o.grid[slot.Day][i] = true
		}
	}
}

// DayBusy reports whether any slot falls on day, inside the block range or not.
func (o *Occupancy) DayBusy(day Day) bool {
	return day.Valid() && o.busyDays[day]
}

// BlockBusy reports whether block i is taken on any day of the week.
func (o *Occupancy) BlockBusy(i int) bool {
	for d := range o.grid {
		if o.grid[d][i] {
			return true
		}
	}
	return false
}

// FreeBlocks counts the blocks that are free on every day of the week.
func (o *Occupancy) FreeBlocks() int {
	free := 0
	for i := 0; i < o.blocks; i++ {
		if !o.BlockBusy(i) {
			free++
		}
	}
	return free
}
