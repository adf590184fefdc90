// interpretclient streams a WAV file to a running interpreter service
// and prints the transcription events it gets back. It simulates a
// real client: chunked audio at real-time pace over the websocket.
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// WAV header is 44 bytes for standard PCM files
const wavHeaderSize = 44

// Stream audio in chunks to simulate real-time streaming
// At 16kHz 16-bit mono = 32000 bytes/second
// 100ms chunks = 3200 bytes
const chunkSize = 3200
const chunkIntervalMs = 100

type serverEvent struct {
	Type           string   `json:"type"`
	SessionID      int64    `json:"session_id"`
	OriginalText   string   `json:"original_text"`
	TranslatedText *string  `json:"translated_text"`
	Confidence     *float64 `json:"confidence"`
	Timestamp      string   `json:"timestamp"`
}

func main() {
	audioFile := flag.String("audio", "testdata/sample-16khz.wav", "Path to WAV file (16kHz 16-bit mono)")
	serverAddr := flag.String("server", "localhost:8000", "Service host:port")
	token := flag.String("token", "", "Auth token")
	sourceLang := flag.String("source", "en", "Source language code")
	targetLang := flag.String("target", "es", "Target language code")
	sessionID := flag.Int64("session", 0, "Existing session id to resume (0 = new session)")
	flag.Parse()

	if *token == "" {
		log.Fatal("A token is required (-token)")
	}

	// Open audio file
	f, err := os.Open(*audioFile)
	if err != nil {
		log.Fatalf("Failed to open audio file: %v", err)
	}
	defer f.Close()

	// Read and validate WAV header
	header := make([]byte, wavHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		log.Fatalf("Failed to read WAV header: %v", err)
	}

	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		log.Fatal("Not a valid WAV file")
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	numChannels := binary.LittleEndian.Uint16(header[22:24])
	sampleRate := binary.LittleEndian.Uint32(header[24:28])
	bitsPerSample := binary.LittleEndian.Uint16(header[34:36])

	log.Printf("WAV file: format=%d channels=%d sampleRate=%d bitsPerSample=%d",
		audioFormat, numChannels, sampleRate, bitsPerSample)

	if audioFormat != 1 { // PCM
		log.Fatal("Only PCM format supported")
	}
	if sampleRate != 16000 {
		log.Printf("Warning: Sample rate is %d Hz, expected 16000 Hz", sampleRate)
	}

	// Connect to the interpretation endpoint
	q := url.Values{}
	q.Set("source_language", *sourceLang)
	q.Set("target_language", *targetLang)
	q.Set("token", *token)
	if *sessionID > 0 {
		q.Set("session_id", strconv.FormatInt(*sessionID, 10))
	}
	u := url.URL{Scheme: "ws", Host: *serverAddr, Path: "/v1/ws/interpret", RawQuery: q.Encode()}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	log.Printf("Connected to %s", u.Host)

	// Wait for the ready event before sending audio
	var ready serverEvent
	if err := conn.ReadJSON(&ready); err != nil {
		log.Fatalf("Failed to read ready event: %v", err)
	}
	if ready.Type != "ready" {
		log.Fatalf("Expected ready event, got %q", ready.Type)
	}
	log.Printf("Session ready: sessionId=%d", ready.SessionID)

	// Print transcription events as they arrive
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev serverEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Printf("Unparseable event: %s", data)
				continue
			}
			translated := "(unavailable)"
			if ev.TranslatedText != nil {
				translated = *ev.TranslatedText
			}
			log.Printf("Transcript: %q -> %q", ev.OriginalText, translated)
		}
	}()

	// Stream audio in chunks
	audioChunk := make([]byte, chunkSize)
	var totalBytes int64
	var chunkNum int
	startTime := time.Now()

	for {
		n, err := f.Read(audioChunk)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read audio: %v", err)
		}

		chunkNum++
		totalBytes += int64(n)

		if err := conn.WriteMessage(websocket.BinaryMessage, audioChunk[:n]); err != nil {
			log.Fatalf("Failed to send chunk: %v", err)
		}

		if chunkNum%10 == 0 {
			log.Printf("Sent chunk %d (%d bytes total)", chunkNum, totalBytes)
		}

		// Simulate real-time streaming
		time.Sleep(chunkIntervalMs * time.Millisecond)
	}

	elapsed := time.Since(startTime)
	log.Printf("Finished streaming: %d chunks, %d bytes in %v", chunkNum, totalBytes, elapsed)

	// Give the pipeline a moment to flush the last transcripts, then
	// close cleanly.
	time.Sleep(2 * time.Second)

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(5*time.Second))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}

	log.Println("Stream completed")
}
