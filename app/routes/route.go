package routes

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/proshop/backend/app/configs"
	"github.com/proshop/backend/app/handlers"
	"github.com/proshop/backend/app/middlewares"
	"github.com/proshop/backend/app/repositories"
	"github.com/proshop/backend/app/services"
	"github.com/proshop/backend/app/utils/renderer"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV) *mux.Router {
	rnd := renderer.New()
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	shippingAddrRepo := repositories.NewShippingAddressRepository(db)

	tokenSvc := services.NewTokenService(services.TokenConfig{
		SecretKey:     env.JWTSecret,
		TokenDuration: 24 * time.Hour,
		Issuer:        "proshop-api",
	})
	userSvc := services.NewUserService(userRepo)
	productSvc := services.NewProductService(productRepo)
	reviewSvc := services.NewReviewService(db, productRepo, reviewRepo)
	orderSvc := services.NewOrderService(db, productRepo, orderRepo, orderItemRepo, shippingAddrRepo)

	productHandler := handlers.NewProductHandler(productSvc, reviewSvc, rnd, validate, env.UploadDir)
	orderHandler := handlers.NewOrderHandler(orderSvc, rnd, validate)
	userHandler := handlers.NewUserHandler(userSvc, tokenSvc, rnd, validate)

	auth := middlewares.AuthMiddleware(tokenSvc, userRepo, rnd)
	admin := middlewares.AdminMiddleware(rnd)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Catalog reads are public.
	api.HandleFunc("/products", productHandler.Products).Methods("GET")
	api.HandleFunc("/products/top", productHandler.TopProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")

	api.Handle("/products", auth(admin(http.HandlerFunc(productHandler.CreateProduct)))).Methods("POST")
	api.Handle("/products/upload-image", auth(admin(http.HandlerFunc(productHandler.UploadImage)))).Methods("POST")
	api.Handle("/products/{id}", auth(admin(http.HandlerFunc(productHandler.UpdateProduct)))).Methods("PUT")
	api.Handle("/products/{id}", auth(admin(http.HandlerFunc(productHandler.DeleteProduct)))).Methods("DELETE")
	api.Handle("/products/{id}/reviews", auth(http.HandlerFunc(productHandler.CreateReview))).Methods("POST")

	api.Handle("/orders", auth(http.HandlerFunc(orderHandler.PlaceOrder))).Methods("POST")
	api.Handle("/orders", auth(admin(http.HandlerFunc(orderHandler.Orders)))).Methods("GET")
	api.Handle("/orders/myorders", auth(http.HandlerFunc(orderHandler.MyOrders))).Methods("GET")
	api.Handle("/orders/{id}", auth(http.HandlerFunc(orderHandler.OrderDetail))).Methods("GET")
	api.Handle("/orders/{id}/pay", auth(http.HandlerFunc(orderHandler.Pay))).Methods("PUT")
	api.Handle("/orders/{id}/deliver", auth(admin(http.HandlerFunc(orderHandler.Deliver)))).Methods("PUT")

	api.HandleFunc("/users/login", userHandler.Login).Methods("POST")
	api.HandleFunc("/users/register", userHandler.Register).Methods("POST")
	api.Handle("/users/profile", auth(http.HandlerFunc(userHandler.Profile))).Methods("GET")
	api.Handle("/users/profile", auth(http.HandlerFunc(userHandler.UpdateProfile))).Methods("PUT")
	api.Handle("/users", auth(admin(http.HandlerFunc(userHandler.Users)))).Methods("GET")
	api.Handle("/users/{id}", auth(admin(http.HandlerFunc(userHandler.UserDetail)))).Methods("GET")
	api.Handle("/users/{id}", auth(admin(http.HandlerFunc(userHandler.UpdateUser)))).Methods("PUT")
	api.Handle("/users/{id}", auth(admin(http.HandlerFunc(userHandler.DeleteUser)))).Methods("DELETE")

	// Uploaded product images.
	router.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(http.Dir(env.UploadDir))))

	return router
}
