//go:build test_unit

package identity

import (
	"context"

	maplegw "github.com/maplegw/go-maplegw"
	"github.com/stretchr/testify/mock"
)

type mockOcidLookup struct {
	mock.Mock
}

func (m *mockOcidLookup) LookupOcid(ctx context.Context, characterName string) (maplegw.Ocid, error) {
	args := m.Called(ctx, characterName)
	return args.Get(0).(maplegw.Ocid), args.Error(1)
}
