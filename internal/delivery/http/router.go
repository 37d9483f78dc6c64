package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	meetupController *controllers.MeetupController,
	subscriptionController *controllers.SubscriptionController,
	notificationController *controllers.NotificationController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Public
	mux.HandleFunc("POST /users", authController.SignUp)
	mux.HandleFunc("POST /sessions", authController.Login)

	// Profile
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PUT /users/me", auth(userController.UpdateMe))

	// Meetups
	mux.HandleFunc("GET /meetups", auth(meetupController.List))
	mux.HandleFunc("POST /meetups", auth(meetupController.Create))
	mux.HandleFunc("GET /organizing", auth(meetupController.ListOrganizing))
	mux.HandleFunc("GET /meetups/{meetupID}", auth(meetupController.Get))
	mux.HandleFunc("PUT /meetups/{meetupID}", auth(meetupController.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", auth(meetupController.Cancel))

	// Subscriptions
	mux.HandleFunc("GET /subscriptions", auth(subscriptionController.List))
	mux.HandleFunc("POST /meetups/{meetupID}/subscriptions", auth(subscriptionController.Subscribe))
	mux.HandleFunc("DELETE /subscriptions/{subscriptionID}", auth(subscriptionController.Unsubscribe))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(notificationController.List))
	mux.HandleFunc("PUT /notifications/{notificationID}", auth(notificationController.Acknowledge))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
