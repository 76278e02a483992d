package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/yourrobotics/backend/models"
	"github.com/yourrobotics/backend/service"
)

// ChatStore is the slice of the store the chat assistant needs.
type ChatStore interface {
	ProductsMatchingKeywords(ctx context.Context, keywords []string) ([]models.Product, error)
}

type ChatHandler struct {
	DB     ChatStore
	Gemini *service.GeminiClient
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

const chatFallbackReply = "Sorry, I couldn't generate a reply right now."

const chatSystemPrompt = `You are a helpful robotics shop assistant for a Bangladesh-based site.
Recommend only from the available list, show price in ৳, mention if something is not in stock and estimate the price.
Provide a step-by-step guide and YouTube/blog links.`

type projectGuide struct {
	Name    string
	YouTube string
	Blog    string
}

var projectGuides = []projectGuide{
	{"line following robot", "https://www.youtube.com/watch?v=7E0Nn3d3h_g", "https://circuitdigest.com/microcontroller-projects/arduino-line-follower-robot"},
	{"obstacle avoiding robot", "https://www.youtube.com/watch?v=sXr2N5Jb24U", "https://create.arduino.cc/projecthub/projects/obstacle-avoiding-robot"},
	{"soccerbot", "https://www.youtube.com/watch?v=XHFO5Rlf1CE", "https://www.instructables.com/Arduino-Robot-Soccer/"},
	{"firefighting robot", "https://www.youtube.com/watch?v=Owp8o21Gggg", "https://circuitdigest.com/microcontroller-projects/arduino-fire-fighting-robot"},
	{"fighterbot", "https://www.youtube.com/watch?v=n6tdwzvPsF8", "https://www.instructables.com/Robot-Wars-Battle-Bot/"},
	{"rc car", "https://www.youtube.com/watch?v=3iPLX3bdO0g", "https://create.arduino.cc/projecthub/projects/arduino-rc-car"},
	{"bluetooth car", "https://www.youtube.com/watch?v=KvdpK9chzAU", "https://circuitdigest.com/microcontroller-projects/arduino-bluetooth-controlled-car"},
	{"wall following robot", "https://www.youtube.com/watch?v=8EE2qN5H53Q", "https://circuitdigest.com/microcontroller-projects/arduino-wall-following-robot"},
	{"maze solving robot", "https://www.youtube.com/watch?v=8euHkAv6NFI", "https://circuitdigest.com/microcontroller-projects/arduino-maze-solving-robot"},
	{"gesture controlled robot", "https://www.youtube.com/watch?v=GGuAwhQqAaE", "https://circuitdigest.com/microcontroller-projects/gesture-controlled-robot-using-arduino"},
}

// matchProject finds the first known project mentioned in the message.
func matchProject(message string) *projectGuide {
	lower := strings.ToLower(message)
	for i := range projectGuides {
		if strings.Contains(lower, projectGuides[i].Name) {
			return &projectGuides[i]
		}
	}
	return nil
}

// Chat forwards a templated prompt to the generative-language API and
// relays the reply. Public; any provider failure collapses to a 500.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, `{"message":"message is required"}`, http.StatusBadRequest)
		return
	}

	project := matchProject(req.Message)
	var components []models.Product
	if project != nil {
		keywords := strings.Fields(project.Name)
		var err error
		components, err = h.DB.ProductsMatchingKeywords(r.Context(), keywords)
		if err != nil {
			log.Printf("chat: product lookup: %v", err)
			components = nil
		}
	}

	productList := "No products found for this project."
	if len(components) > 0 {
		lines := make([]string, 0, len(components))
		for _, c := range components {
			line := fmt.Sprintf("%s - ৳%g", c.Name, c.Price)
			if c.Stock <= 0 {
				line += " (Out of stock)"
			}
			lines = append(lines, line)
		}
		productList = strings.Join(lines, "\n")
	}

	projectLinks := ""
	if project != nil {
		projectLinks = fmt.Sprintf("YouTube: %s\nBlog: %s", project.YouTube, project.Blog)
	}
	userPrompt := fmt.Sprintf("User question: %s\nAvailable components:\n%s\n%s", req.Message, productList, projectLinks)

	reply, err := h.Gemini.GenerateReply(r.Context(), chatSystemPrompt+"\n"+userPrompt)
	if err != nil {
		log.Printf("chat: gemini: %v", err)
		http.Error(w, `{"message":"AI chat failed"}`, http.StatusInternalServerError)
		return
	}
	if reply == "" {
		reply = chatFallbackReply
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{Reply: reply})
}
