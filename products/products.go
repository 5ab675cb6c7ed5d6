package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrogram/db"
	"agrogram/globals"
	"agrogram/models"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateProduct adds a listing for the authenticated seller.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if product.Name == "" || product.Price <= 0 || product.Quantity < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	role, _ := r.Context().Value(globals.RoleKey).(string)
	product.ProductID = "p" + utils.GenerateName(10)
	product.SellerID = userID
	product.SellerRole = role
	product.OutOfStock = product.Quantity == 0
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// EditProduct updates a listing; only its seller may touch it.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Unit        *string  `json:"unit"`
		Quantity    *int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			http.Error(w, "Price must be positive", http.StatusBadRequest)
			return
		}
		set["price"] = *input.Price
	}
	if input.Unit != nil {
		set["unit"] = *input.Unit
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			http.Error(w, "Quantity cannot be negative", http.StatusBadRequest)
			return
		}
		set["quantity"] = *input.Quantity
		set["outOfStock"] = *input.Quantity == 0
	}

	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": ps.ByName("productid"), "sellerId": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		log.Println("EditProduct UpdateOne error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteProduct removes a listing; only its seller may.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := db.ProductCollection.DeleteOne(ctx, bson.M{
		"productId": ps.ByName("productid"),
		"sellerId":  userID,
	})
	if err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
