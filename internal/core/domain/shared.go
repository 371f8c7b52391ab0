package domain

import (
	"strconv"
)

type ProductID int

func ParseProductID(raw string) (ProductID, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return ProductID(id), true
}

func (id ProductID) String() string {
	return strconv.Itoa(int(id))
}

type Event interface {
	GetName() string
	GetEntityName() string
}
