package store

import (
	"context"
	"testing"

	"go-canteen-ordering/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestInsertOrderRollsBackWhenItemsInsertFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("items write refused", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "write refused"}),
			mtest.CreateSuccessResponse(),
		)

		s := NewMongoStore(mt.Client)
		name := "Cold Coffee"
		qty := 1
		price := 80.0
		_, err := s.InsertOrder(context.Background(), models.Order{
			Items: []models.OrderItem{{Name: &name, Quantity: &qty, Unit_price: &price}},
		})
		require.Error(mt, err)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 3)
		assert.Equal(mt, "insert", events[0].CommandName)
		assert.Equal(mt, "orders", events[0].Command.Lookup("insert").StringValue())
		assert.Equal(mt, "insert", events[1].CommandName)
		assert.Equal(mt, "order_items", events[1].Command.Lookup("insert").StringValue())
		assert.Equal(mt, "delete", events[2].CommandName)
		assert.Equal(mt, "orders", events[2].Command.Lookup("delete").StringValue())
	})
}
