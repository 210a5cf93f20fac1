package store

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_DeleteProduct(t *testing.T) {
	tests := []struct {
		name      string
		owner     int64
		deleteErr error
		wantErr   error
	}{
		{name: "deleted", owner: 8},
		{name: "not owner", owner: 9, wantErr: ErrNotOwner},
		{name: "ordered product", owner: 8, deleteErr: pgError(pgerrcode.ForeignKeyViolation), wantErr: ErrProductReferenced},
		{name: "driver failure", owner: 8, deleteErr: errors.New("conn reset"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewProductRepository(db, logger.Nop())

			mock.ExpectBegin()
			mock.ExpectQuery("SELECT supplier_id FROM products").
				WithArgs(int64(15)).
				WillReturnRows(sqlmock.NewRows([]string{"supplier_id"}).AddRow(tt.owner))
			if tt.owner == 8 {
				exec := mock.ExpectExec("DELETE FROM products").WithArgs(int64(15))
				if tt.deleteErr != nil {
					exec.WillReturnError(tt.deleteErr)
				} else {
					exec.WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}
			if tt.wantErr == nil {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := repo.DeleteProduct(testContext(), 8, 15)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if errors.Is(tt.wantErr, ErrReferenced) {
				assert.NotErrorIs(t, err, ErrNotFound)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
