package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/productapi"
)

// Messages returned in the {"msg"} envelope.
const (
	MsgRegistered    = "Producto registrado correctamente"
	MsgInvalidBody   = "Solicitud inválida"
	MsgIDRequired    = "El campo idproducto es obligatorio"
	MsgIDNotNumeric  = "El campo idproducto debe contener solo números"
	MsgNameRequired  = "El campo nombre es obligatorio"
	MsgDuplicate     = "Ya existe un producto con ese id"
	MsgNotFound      = "Producto no encontrado"
	MsgInternalError = "Error interno del servidor"
)

const (
	// ProductPrefix is where every product route lives
	ProductPrefix = "/producto"

	// EventsPath streams registrations over a websocket
	EventsPath = ProductPrefix + "/eventos"

	// maxRequestBody caps the size of a registration body
	maxRequestBody = 64 << 10
)

// Router builds the backend's routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	// full paths on the top-level router so a method mismatch answers 405
	r.HandleFunc(productapi.RegisterPath, s.register).Methods(http.MethodPost)
	r.HandleFunc(EventsPath, s.hub.ServeHTTP).Methods(http.MethodGet)
	r.HandleFunc(ProductPrefix+"/{idproducto:[0-9]+}", s.getProduct).Methods(http.MethodGet)

	return logMiddleware(r)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	var req productapi.CreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if msg := validate(req); msg != "" {
		writeMsg(w, http.StatusBadRequest, msg)
		return
	}

	product, err := s.store.Add(req.ProductID, strings.TrimSpace(req.ProductName))
	if errors.Is(err, ErrDuplicate) {
		writeMsg(w, http.StatusConflict, MsgDuplicate)
		return
	}
	if err != nil {
		logging.Error("Failed to store product", zap.Error(err))
		writeMsg(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	logging.Info("Product stored",
		zap.String("idproducto", product.ID),
		zap.String("nombre", product.Name),
		zap.Int("total", s.store.Count()),
	)
	s.hub.Broadcast(Event{Type: EventRegistered, Product: product})

	writeMsg(w, http.StatusCreated, MsgRegistered)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["idproducto"]

	product, ok := s.store.Get(id)
	if !ok {
		writeMsg(w, http.StatusNotFound, MsgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// validate mirrors the form's own checks and returns the message for the
// first failing rule, or "" when the request is acceptable.
func validate(req productapi.CreateRequest) string {
	switch {
	case req.ProductID == "":
		return MsgIDRequired
	case !isDigits(req.ProductID):
		return MsgIDNotNumeric
	case strings.TrimSpace(req.ProductName) == "":
		return MsgNameRequired
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, productapi.Response{Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		logging.Error("Failed to write response", zap.Error(err))
	}
}
