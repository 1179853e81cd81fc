package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPengajuanBaru, StatusDiproses, StatusSelesai, StatusDitolak} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("ARCHIVED"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("pengajuan_baru"))
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPengajuanBaru, StatusDiproses},
		{StatusPengajuanBaru, StatusDitolak},
		{StatusDiproses, StatusSelesai},
		{StatusDiproses, StatusDitolak},
	}
	for _, edge := range allowed {
		assert.True(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}

	denied := [][2]string{
		{StatusPengajuanBaru, StatusSelesai},
		{StatusPengajuanBaru, StatusPengajuanBaru},
		{StatusDiproses, StatusPengajuanBaru},
		{StatusSelesai, StatusDiproses},
		{StatusSelesai, StatusDitolak},
		{StatusDitolak, StatusPengajuanBaru},
		{StatusDitolak, StatusSelesai},
	}
	for _, edge := range denied {
		assert.False(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}
}
