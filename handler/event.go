package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	c "blockpass-backend/context"
	"blockpass-backend/logger"
	"blockpass-backend/model"
	"blockpass-backend/registry"
	"blockpass-backend/response"

	"github.com/gorilla/mux"
)

func CreateEvent(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.CreateEventRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Errorf(ctx, "createEvent: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		details := model.EventDetails{}
		if req.Data.Details != nil {
			details = *req.Data.Details
		}

		host := c.GetContextValue(ctx, c.ContextKeyCaller)
		id, err := service.CreateEvent(ctx, details, req.Data.IssuerID, host)
		if err != nil {
			logger.Errorf(ctx, "createEvent: unable to create event: %+v", err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{EventID: id},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func PurchaseTicket(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		var req model.PurchaseTicketRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Errorf(ctx, "purchaseTicket: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		caller := c.GetContextValue(ctx, c.ContextKeyCaller)
		success, err := service.PurchaseTicket(ctx, eventID, req.Data.TokenURI, caller, req.Data.PaymentAmount)
		if err != nil {
			logger.Errorf(ctx, "purchaseTicket: unable to purchase ticket for event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Purchase: &model.PurchaseResult{Success: success}},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func DeactivateEvent(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		caller := c.GetContextValue(ctx, c.ContextKeyCaller)
		success, err := service.DeactivateEvent(ctx, eventID, caller)
		if err != nil {
			logger.Errorf(ctx, "deactivateEvent: unable to deactivate event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Deactivate: &model.DeactivateResult{Success: success}},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetEvent(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		ev, found, err := service.Event(ctx, eventID)
		if err != nil {
			logger.Errorf(ctx, "getEvent: unable to get event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.EventNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Event: ev},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetEventDetails(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		details, found, err := service.EventDetails(ctx, eventID)
		if err != nil {
			logger.Errorf(ctx, "getEventDetails: unable to get details of event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.EventNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Details: details},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetEventAttendees(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		attendees, found, err := service.Attendees(ctx, eventID)
		if err != nil {
			logger.Errorf(ctx, "getEventAttendees: unable to get attendees of event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.EventNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Attendees: attendees},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetTicketIssuer(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		eventID, ok := eventIDFromPath(w, r)
		if !ok {
			return
		}

		issuerID, found, err := service.TicketIssuer(ctx, eventID)
		if err != nil {
			logger.Errorf(ctx, "getTicketIssuer: unable to get issuer of event %d: %+v", eventID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.EventNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{IssuerID: &issuerID},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetRegisteredEvents(service *registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		caller := vars["caller"]

		ids, found, err := service.RegisteredEvents(ctx, caller)
		if err != nil {
			logger.Errorf(ctx, "getRegisteredEvents: unable to get events of %s: %+v", caller, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.NoRegisteredEvents().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{EventIDs: ids},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func eventIDFromPath(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	ctx := r.Context()
	raw := mux.Vars(r)["eventID"]

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		logger.Errorf(ctx, "eventIDFromPath: unable to parse event id: %s: %+v", raw, err)
		response.InvalidData(fmt.Sprintf("invalid event id: %v", raw)).Send(ctx, w)
		return 0, false
	}
	return id, true
}
