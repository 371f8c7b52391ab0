package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type NotifierPort interface {
	Notify(ctx context.Context, message string)
}
