package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/service/appointment"
	"github.com/mrashed-dev/doctors-portal-server/service/booking"
	"github.com/mrashed-dev/doctors-portal-server/service/doctor"
	"github.com/mrashed-dev/doctors-portal-server/service/payment"
	"github.com/mrashed-dev/doctors-portal-server/service/user"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := NewRouter(s.db)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}

// NewRouter wires every handler; split out from Run so tests can mount the
// full surface without listening.
func NewRouter(db *gorm.DB) *mux.Router {
	router := mux.NewRouter()

	appointmentHandler := appointment.NewAppointmentHandler(db)
	appointmentHandler.RegisterRoutes(router)

	bookingHandler := booking.NewBookingHandler(db)
	bookingHandler.RegisterRoutes(router)

	userHandler := user.NewHandler(db)
	userHandler.RegisterRoutes(router)

	doctorHandler := doctor.NewDoctorHandler(db)
	doctorHandler.RegisterRoutes(router)

	paymentHandler := payment.NewPaymentHandler(db, payment.NewClient())
	paymentHandler.RegisterRoutes(router)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("doctors portal server is running"))
	}).Methods("GET")

	return router
}
