package handlers

import (
	"context"
	"log"

	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// The signaling handlers are pure relays: offer, answer and candidate
// payloads pass through untouched so the two peers can negotiate a
// direct connection. The coordinator is a rendezvous point, never a
// party to the negotiated connection.

// Function to relay the initial offer+candidate to the room's
// occupant, stamped with the requester's address so the occupant can
// answer directly.
func HandleAskToJoin(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		userName := stringField(payload, "userName")
		roomName := stringField(payload, "roomName")
		sdpOffer := stringField(payload, "sdpOffer")
		iceCandidate := stringField(payload, "iceCandidate")
		address := string(client.Id())

		log.Printf("[SIGNAL] HandleAskToJoin - User: %s, Room: %s", userName, roomName)

		err := coord.AskToJoin(context.Background(), address, userName, roomName, sdpOffer, iceCandidate)
		if err != nil {
			log.Printf("[SIGNAL-ERROR] Error relaying join request for room %s: %v", roomName, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, userName,
				"An error occurred while asking to join")})
		}
	}
}

// Function to relay an answer+candidate straight to the requester's
// connection address.
func HandleSendAnswer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		roomName := stringField(payload, "roomName")
		userName := stringField(payload, "userName")
		targetAddress := stringField(payload, "targetAddress")
		sdpAnswer := stringField(payload, "sdpAnswer")
		iceCandidate := stringField(payload, "iceCandidate")
		address := string(client.Id())

		err := coord.SendAnswer(context.Background(), address, roomName, userName, targetAddress, sdpAnswer, iceCandidate)
		if err != nil {
			log.Printf("[SIGNAL-ERROR] Error relaying answer to %s: %v", targetAddress, err)
			client.Emit("error", gin.H{"error": errorMessage(err, roomName, userName,
				"An error occurred while sending the answer")})
		}
	}
}

// Function to relay a follow-up offer point-to-point.
func HandleSendOffer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		targetAddress := stringField(payload, "targetAddress")
		offer := stringField(payload, "offer")
		candidate := stringField(payload, "candidate")
		address := string(client.Id())

		err := coord.SendOffer(context.Background(), address, targetAddress, offer, candidate)
		if err != nil {
			log.Printf("[SIGNAL-ERROR] Error relaying offer to %s: %v", targetAddress, err)
			client.Emit("error", gin.H{"error": errorMessage(err, "", "",
				"An error occurred while sending the offer")})
		}
	}
}

// Function to relay a lone ICE candidate point-to-point.
func HandleSendICEUpdate(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args...)
		targetAddress := stringField(payload, "targetAddress")
		candidate := stringField(payload, "candidate")
		address := string(client.Id())

		err := coord.SendICEUpdate(context.Background(), address, targetAddress, candidate)
		if err != nil {
			log.Printf("[SIGNAL-ERROR] Error relaying candidate to %s: %v", targetAddress, err)
			client.Emit("error", gin.H{"error": errorMessage(err, "", "",
				"An error occurred while sending the candidate")})
		}
	}
}
