package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	pgrepo "github.com/Gunvolt24/jobboard/internal/repo/postgres"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	_, err := pgrepo.NewPool(context.Background(), "postgres://app@localhost:notaport/market", 4)
	require.ErrorContains(t, err, "parse postgres dsn")
}
