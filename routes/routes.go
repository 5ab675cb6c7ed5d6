package routes

import (
	"net/http"

	"agrogram/agi"
	"agrogram/auth"
	"agrogram/cart"
	"agrogram/chats"
	"agrogram/middleware"
	"agrogram/orders"
	"agrogram/products"
	"agrogram/profile"
	"agrogram/ratelim"
	"agrogram/rbac"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
	router.GET("/api/auth/capabilities", middleware.Authenticate(auth.Capabilities))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", rl.Limit(middleware.Authenticate(profile.UpdateProfile)))
	router.GET("/api/profile/badges", middleware.Authenticate(profile.GetBadges))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetItems))
	router.GET("/api/myproducts", middleware.RequirePermission(rbac.PermManageProducts, products.GetMyItems))
	router.GET("/api/products/:productid", products.GetItem)
	router.POST("/api/products", rl.Limit(middleware.RequirePermission(rbac.PermManageProducts, products.CreateProduct)))
	router.PUT("/api/products/:productid", middleware.RequirePermission(rbac.PermManageProducts, products.EditProduct))
	router.DELETE("/api/products/:productid", middleware.RequirePermission(rbac.PermManageProducts, products.DeleteProduct))
	router.POST("/api/products/:productid/image", rl.Limit(middleware.RequirePermission(rbac.PermManageProducts, products.UploadProductImage)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.RequirePermission(rbac.PermManageCart, cart.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.RequirePermission(rbac.PermManageCart, cart.AddToCart)))
	router.PUT("/api/cart/:productid", middleware.RequirePermission(rbac.PermManageCart, cart.UpdateCartItem))
	router.DELETE("/api/cart/:productid", middleware.RequirePermission(rbac.PermManageCart, cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.RequirePermission(rbac.PermManageCart, cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout", rl.Limit(middleware.RequirePermission(rbac.PermPlaceOrder, orders.Checkout)))
	router.GET("/api/orders", middleware.RequirePermission(rbac.PermViewOrders, orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.RequirePermission(rbac.PermViewOrders, orders.GetOrder))
	router.GET("/api/orders/:orderid/actions", middleware.RequirePermission(rbac.PermViewOrders, orders.GetOrderActions))
	router.POST("/api/orders/:orderid/actions", rl.Limit(middleware.RequirePermission(rbac.PermViewOrders, orders.SubmitOrderAction)))
	router.GET("/api/orders/:orderid/receipt", middleware.RequirePermission(rbac.PermViewOrders, orders.DownloadReceipt))
}

func AddChatRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *chats.Hub) {
	router.POST("/api/contact", rl.Limit(middleware.Authenticate(chats.ContactCounterparty)))
	router.GET("/api/chats", middleware.Authenticate(chats.GetConversations))
	router.GET("/api/chats/:conversationid/messages", middleware.Authenticate(chats.GetMessages))
	router.POST("/api/chats/:conversationid/messages", rl.Limit(middleware.Authenticate(chats.PostMessage(hub))))
	router.GET("/api/chats/:conversationid/ws", chats.ServeWS(hub))
}

func AddRecommendationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/recommendations", rl.Limit(middleware.Authenticate(agi.GetRecommendations)))
}
