package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrogram/db"
	"agrogram/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadReceipt renders the order as a PDF with a verification QR code.
// Buyer and seller only.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, _, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if !IsBuyer(order, id) && !IsSeller(order, id) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	pdf, err := receiptPDF(order)
	if err != nil {
		log.Println("DownloadReceipt render error:", err)
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, order.OrderID))
	if err := pdf.Output(w); err != nil {
		log.Println("DownloadReceipt output error:", err)
	}
}

func receiptPDF(order models.Order) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Agrogram Order Receipt")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Order", order.OrderID)
	line("Status", order.Status)
	line("Date", order.CreatedAt.Format("2006-01-02 15:04"))
	line("Buyer", order.BuyerEmail)
	line("Seller", order.SellerEmail)
	line("Product", order.ProductDetails.Title)
	line("Unit price", fmt.Sprintf("%.2f", order.ProductDetails.Price))
	line("Quantity", fmt.Sprintf("%d %s", order.Quantity, order.ProductDetails.Unit))
	line("Total", fmt.Sprintf("%.2f", order.TotalPrice))
	if order.TrackingNumber != "" {
		line("Tracking", order.Carrier+" "+order.TrackingNumber)
	}
	if order.RefundAmount > 0 {
		line("Refunded", fmt.Sprintf("%.2f via %s", order.RefundAmount, order.RefundMethod))
	}

	png, err := qrcode.Encode("agrogram:order:"+order.OrderID, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("receipt-qr", 160, 20, 35, 35, false, opts, 0, "")

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}
