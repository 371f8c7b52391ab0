package port

import "time"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type MetricsPort interface {
	ObserveOperation(operation, outcome string, elapsed time.Duration)
}
