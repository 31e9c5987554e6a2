package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"sevabook/auth"
	"sevabook/booking"
	"sevabook/ratelim"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rateLimiter *ratelim.RateLimiter) {
	router.POST("/login", rateLimiter.Limit(h.Login))
}

func AddBookingRoutes(router *httprouter.Router, h *booking.Handler, rateLimiter *ratelim.RateLimiter) {
	router.POST("/book", rateLimiter.Limit(h.Book))
	router.GET("/bookingDetails", h.BookingDetails)
	router.GET("/bookingSlip", h.Slip)
	router.GET("/ws/slots/:date/:session/:slot", booking.HandleSlotWS)
}

// AddStaticRoutes serves the frontend pages. Page rendering is plain static
// HTML; everything dynamic goes through the JSON endpoints above.
func AddStaticRoutes(router *httprouter.Router) {
	router.GET("/", servePage("public/index.html"))
	router.GET("/login", servePage("public/login.html"))
	router.GET("/select_slot", servePage("public/select_slot.html"))
	router.GET("/confirm", servePage("public/confirm.html"))
	router.ServeFiles("/static/*filepath", http.Dir("public/static"))
}

func servePage(path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.ServeFile(w, r, path)
	}
}
