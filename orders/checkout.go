package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"agrogram/db"
	"agrogram/models"
	"agrogram/mq"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Checkout turns every cart line into a PENDING order against its seller,
// decrements stock, and clears the cart. One order per line; an order binds
// exactly one buyer and one seller.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, buyer, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Address == "" {
		payload.Address = buyer.Address
	}

	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": id.UserID})
	if err != nil {
		log.Println("Checkout cart Find error:", err)
		http.Error(w, "Could not read cart", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Error reading cart data", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	created := make([]models.Order, 0, len(items))
	skipped := []string{}
	for _, item := range items {
		order, err := orderFromCartLine(ctx, buyer, item, payload.Address)
		if err != nil {
			log.Printf("Checkout: skipping %s: %v", item.ProductID, err)
			skipped = append(skipped, item.ProductID)
			continue
		}
		if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
			log.Println("Checkout InsertOne error:", err)
			releaseStock(ctx, item)
			skipped = append(skipped, item.ProductID)
			continue
		}
		mq.Emit("order-placed", mq.Event{
			UserID:   id.UserID,
			OrderID:  order.OrderID,
			Status:   order.Status,
			NotifyID: order.SellerID,
			Text:     "New order " + order.OrderID + " received",
		})
		created = append(created, order)
	}

	if len(created) == 0 {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"error":   "No orders could be created",
			"skipped": skipped,
		})
		return
	}

	// Only lines that became orders leave the cart; skipped lines stay so
	// the buyer can retry them.
	if _, err := db.CartCollection.DeleteMany(ctx, purchasedLinesFilter(id.UserID, created)); err != nil {
		log.Println("Checkout cart cleanup error:", err)
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"orders":  created,
		"skipped": skipped,
	}, "Order placed", nil)
}

func orderFromCartLine(ctx context.Context, buyer models.User, item models.CartItem, address string) (models.Order, error) {
	// Reserve stock first; a line whose product sold out is skipped, not
	// fatal to the rest of the checkout.
	filter := bson.M{
		"productId":  item.ProductID,
		"quantity":   bson.M{"$gte": item.Quantity},
		"outOfStock": false,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": -item.Quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := db.ProductCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Order{}, err
	}
	if result.ModifiedCount == 0 {
		return models.Order{}, errProductUnavailable
	}
	db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": item.ProductID, "quantity": 0},
		bson.M{"$set": bson.M{"outOfStock": true}},
	)

	var seller models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": item.SellerID}).Decode(&seller); err != nil {
		// The reservation already went through; give the stock back.
		releaseStock(ctx, item)
		return models.Order{}, err
	}

	return models.Order{
		OrderID:     "ORD" + strconv.FormatInt(time.Now().UnixNano()%1e9, 10) + utils.GenerateName(4),
		Status:      StatusPending,
		BuyerID:     buyer.UserID,
		BuyerEmail:  buyer.Email,
		BuyerType:   buyer.Role,
		SellerID:    seller.UserID,
		SellerEmail: seller.Email,
		SellerType:  seller.Role,
		ProductDetails: models.ProductDetails{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Unit:      item.Unit,
			Image:     item.Image,
		},
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice(),
		Address:    address,
		CreatedAt:  time.Now(),
	}, nil
}

// releaseStock undoes a reservation whose order never materialized.
func releaseStock(ctx context.Context, item models.CartItem) {
	if _, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": item.ProductID},
		releaseStockUpdate(item),
	); err != nil {
		log.Printf("Checkout: failed to release stock for %s: %v", item.ProductID, err)
	}
}

func releaseStockUpdate(item models.CartItem) bson.M {
	return bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$set": bson.M{"outOfStock": false, "updatedAt": time.Now()},
	}
}

// purchasedLinesFilter matches only the cart lines that produced orders.
func purchasedLinesFilter(userID string, created []models.Order) bson.M {
	ids := make([]string, 0, len(created))
	for _, o := range created {
		ids = append(ids, o.ProductDetails.ProductID)
	}
	return bson.M{"userId": userID, "productId": bson.M{"$in": ids}}
}

var errProductUnavailable = &checkoutError{"product not available in requested quantity"}

type checkoutError struct{ msg string }

func (e *checkoutError) Error() string { return e.msg }
