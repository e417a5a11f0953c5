package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"blockpass-backend/issuer"
	"blockpass-backend/logger"
	"blockpass-backend/model"
	"blockpass-backend/response"

	"github.com/gorilla/mux"
)

func CreateIssuer(service *issuer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.CreateIssuerRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Errorf(ctx, "createIssuer: error unmarshalling request body: %+v", err)
			response.BadRequest("invalid request body", "").Send(ctx, w)
			return
		}

		id, err := service.Register(ctx, req.Data.Name, req.Data.Symbol)
		if err != nil {
			logger.Errorf(ctx, "createIssuer: unable to register issuer: %+v", err)
			response.SomethingWrong().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data: &response.Data{Issuer: &model.Issuer{
				IssuerID: id,
				Name:     req.Data.Name,
				Symbol:   req.Data.Symbol,
			}},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetTicketOwner(service *issuer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		issuerID, tokenID, ok := ticketFromPath(w, r)
		if !ok {
			return
		}

		owner, found, err := service.OwnerOf(ctx, issuerID, tokenID)
		if err != nil {
			logger.Errorf(ctx, "getTicketOwner: unable to get owner of token %d/%d: %+v", issuerID, tokenID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.TicketNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{Owner: &owner},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func GetTokenURI(service *issuer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		issuerID, tokenID, ok := ticketFromPath(w, r)
		if !ok {
			return
		}

		uri, found, err := service.TokenURI(ctx, issuerID, tokenID)
		if err != nil {
			logger.Errorf(ctx, "getTokenURI: unable to get uri of token %d/%d: %+v", issuerID, tokenID, err)
			response.SomethingWrong().Send(ctx, w)
			return
		}
		if !found {
			response.TicketNotFound().Send(ctx, w)
			return
		}

		response.SuccessResponse{
			Data:       &response.Data{TokenURI: &uri},
			StatusCode: http.StatusOK,
		}.Send(w)
	}
}

func ticketFromPath(w http.ResponseWriter, r *http.Request) (issuerID, tokenID uint64, ok bool) {
	ctx := r.Context()
	vars := mux.Vars(r)

	issuerID, err := strconv.ParseUint(vars["issuerID"], 10, 64)
	if err != nil {
		logger.Errorf(ctx, "ticketFromPath: unable to parse issuer id: %s: %+v", vars["issuerID"], err)
		response.InvalidData(fmt.Sprintf("invalid issuer id: %v", vars["issuerID"])).Send(ctx, w)
		return 0, 0, false
	}

	tokenID, err = strconv.ParseUint(vars["tokenID"], 10, 64)
	if err != nil {
		logger.Errorf(ctx, "ticketFromPath: unable to parse token id: %s: %+v", vars["tokenID"], err)
		response.InvalidData(fmt.Sprintf("invalid token id: %v", vars["tokenID"])).Send(ctx, w)
		return 0, 0, false
	}

	return issuerID, tokenID, true
}
