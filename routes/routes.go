package routes

import (
	"net/http"

	"graintrade/admin"
	"graintrade/auth"
	"graintrade/cart"
	"graintrade/grains"
	"graintrade/middleware"
	"graintrade/orders"
	"graintrade/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/users/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/users/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/users/admin-login", ratelim.RateLimit(auth.AdminLogin))
	router.POST("/api/users/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/users/reset/request", ratelim.RateLimit(auth.RequestPasswordReset))
	router.POST("/api/users/reset/confirm", ratelim.RateLimit(auth.ConfirmPasswordReset))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/cart/add", middleware.Authenticate(cart.AddToCart))
	router.POST("/api/cart/update", middleware.Authenticate(cart.UpdateCart))
	router.DELETE("/api/cart/remove", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart/clear", middleware.Authenticate(cart.ClearCart))
	router.GET("/api/cart/get", middleware.Authenticate(cart.GetCart))
}

func AddGrainRoutes(router *httprouter.Router) {
	router.GET("/api/grains", grains.GetGrains)
	router.GET("/api/grains/types", grains.GetGrainTypes)
	router.GET("/api/grains/grain/:id", grains.GetGrain)
	router.POST("/api/grains", middleware.AdminOnly(grains.CreateGrain))
	router.PUT("/api/grains/grain/:id", middleware.AdminOnly(grains.UpdateGrain))
	router.DELETE("/api/grains/grain/:id", middleware.AdminOnly(grains.DeleteGrain))
	router.POST("/api/grains/grain/:id/review", middleware.Authenticate(grains.AddReview))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/order/place", middleware.Authenticate(orders.PlaceOrder))
	router.POST("/api/order/userorders", middleware.Authenticate(orders.UserOrders))
	router.GET("/api/order/admin/all", middleware.AdminOnly(orders.AllOrders))
	router.POST("/api/order/status", middleware.AdminOnly(orders.UpdateStatus))
	router.GET("/api/order/get/:id", middleware.Authenticate(orders.GetOrderByID))
	router.GET("/api/order/track/:id", middleware.Authenticate(orders.TrackOrder))
	router.GET("/api/order/invoice/:id", middleware.Authenticate(orders.PrintInvoice))
	router.POST("/api/order/cancel/:id", middleware.Authenticate(orders.CancelOrder))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/dashboard/stats", middleware.AdminOnly(admin.DashboardStats))
}
