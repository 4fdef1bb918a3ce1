package pageloader

import "fmt"

// Direction is the pagination axis a load operates on.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

func (d Direction) Valid() bool {
	return d == DirectionNext || d == DirectionPrevious
}

// Opposite returns the other pagination axis.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNext:
		return DirectionPrevious
	case DirectionPrevious:
		return DirectionNext
	default:
		panic(fmt.Errorf("cannot take opposite of direction '%s'", d))
	}
}

func (d Direction) String() string {
	return string(d)
}
