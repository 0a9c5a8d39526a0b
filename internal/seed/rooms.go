package seed

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/frontdesk/internal/persistence"
)

// TotalRooms is the size of the seeded inventory.
const TotalRooms = 45

var roomPrices = map[persistence.RoomType]int64{
	persistence.RoomStandard:   1000,
	persistence.RoomSuperior:   1500,
	persistence.RoomDeluxe:     2000,
	persistence.RoomConnecting: 2500,
}

type fixedRoom struct {
	code   string
	floor  int
	typ    persistence.RoomType
	bed    persistence.BedType
	status persistence.RoomStatus
	maxOcc int
	view   string
	desc   string
	notes  string
}

var fixedRooms = []fixedRoom{
	{"RM101", 1, persistence.RoomStandard, persistence.BedKing, persistence.RoomOccupied, 2, "Garden View", "", "AC checked on 2024-07-20."},
	{"RM102", 1, persistence.RoomStandard, persistence.BedTwin, persistence.RoomAvailable, 2, "Garden View", "", ""},
	{"RM103", 1, persistence.RoomStandard, persistence.BedKing, persistence.RoomCleaning, 2, "City View", "", ""},
	{"RM104", 1, persistence.RoomSuperior, persistence.BedKing, persistence.RoomOccupied, 2, "Pool View", "", "Guest requested extra towels."},
	{"RM105", 1, persistence.RoomSuperior, persistence.BedTwin, persistence.RoomAvailable, 2, "Garden View", "", ""},
	{"RM201", 2, persistence.RoomDeluxe, persistence.BedKing, persistence.RoomAvailable, 2, "Ocean View", "", ""},
	{"RM202", 2, persistence.RoomDeluxe, persistence.BedKing, persistence.RoomOccupied, 2, "Ocean View", "", ""},
	{"RM203", 2, persistence.RoomDeluxe, persistence.BedTwin, persistence.RoomOccupied, 2, "City View", "", ""},
	{"RM301", 3, persistence.RoomConnecting, persistence.BedKing, persistence.RoomOccupied, 4, "Mountain View", "", ""},
	{"RM302", 3, persistence.RoomConnecting, persistence.BedTwin, persistence.RoomOccupied, 0, "Mountain View", "Linked to RM301", "Linked room"},
}

// buildRooms returns the named rooms followed by generated inventory on the
// upper floors. Generated codes start at x03 so they never collide with the
// named rooms.
func buildRooms(year int) []persistence.Room {
	rooms := make([]persistence.Room, 0, TotalRooms)
	for _, r := range fixedRooms {
		floor := floorLabel(r.floor)
		rooms = append(rooms, persistence.Room{
			ID:            "R" + r.code[2:],
			RoomCode:      r.code,
			Floor:         floor,
			FloorAndView:  floor + " - " + r.view,
			Type:          r.typ,
			BedType:       r.bed,
			Price:         decimal.NewFromInt(roomPrices[r.typ]),
			Status:        r.status,
			MaxOccupancy:  r.maxOcc,
			Description:   r.desc,
			InternalNotes: r.notes,
		})
	}

	types := []persistence.RoomType{persistence.RoomStandard, persistence.RoomDeluxe, persistence.RoomSuperior, persistence.RoomConnecting}
	beds := []persistence.BedType{persistence.BedKing, persistence.BedTwin, persistence.BedQueen}
	views := []string{"Garden View", "City View", "Pool View", "Ocean View"}

	for i := 0; len(rooms) < TotalRooms; i++ {
		floorNumber := 3 + i/10
		floor := floorLabel(floorNumber)
		typ := types[i%len(types)]
		room := persistence.Room{
			ID:           fmt.Sprintf("R%d", 500+i),
			RoomCode:     fmt.Sprintf("RM%d", floorNumber*100+i%10+3),
			Floor:        floor,
			FloorAndView: floor + " - " + views[i%len(views)],
			Type:         typ,
			BedType:      beds[i%len(beds)],
			Price:        decimal.NewFromInt(roomPrices[typ]),
			Status:       persistence.RoomAvailable,
			MaxOccupancy: 2,
		}
		if i%5 == 0 {
			room.InternalNotes = fmt.Sprintf("Last maintenance on %d-01-15", year)
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func floorLabel(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s Floor", n, suffix)
}
