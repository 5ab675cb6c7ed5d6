package products

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"agrogram/db"
	"agrogram/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadProductImage stores the product photo plus a 300px thumbnail and
// records the image path on the listing. Seller only.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP.", http.StatusBadRequest)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Cannot decode image", http.StatusBadRequest)
		return
	}

	if err := utils.EnsureDir(productPicDir); err != nil {
		log.Println("UploadProductImage mkdir error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	productID := ps.ByName("productid")
	name := fmt.Sprintf("%s-%s.jpg", productID, utils.GenerateName(6))
	fullPath := filepath.Join(productPicDir, name)
	thumbPath := filepath.Join(productPicDir, "thumb-"+name)

	if err := imaging.Save(img, fullPath); err != nil {
		log.Println("UploadProductImage save error:", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
	}

	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": productID, "sellerId": userID},
		bson.M{"$set": bson.M{"image": "/" + fullPath, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("UploadProductImage UpdateOne error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"image": "/" + fullPath,
		"thumb": "/" + thumbPath,
	})
}
