package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/types"
)

func GetActor(ctx *gin.Context) (types.Actor, error) {
	value, exists := ctx.Get(types.ContextActorKey)

	if !exists {
		return types.Actor{}, errors.New("user not authenticated")
	}

	actor, ok := value.(types.Actor)

	if !ok {
		return types.Actor{}, errors.New("invalid actor type in context")
	}

	return actor, nil
}

func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
