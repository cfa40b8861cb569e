package img

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"

	"github.com/alphafounders/site/internal/diagnostic"
	"github.com/alphafounders/site/internal/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "img",
	Title: "Image operations",
}

var Command = &cobra.Command{
	Use:     "img",
	GroupID: "img",
	Short:   "Generate site images",
}

func init() {
	Command.AddCommand(Advisor)
	Advisor.Flags().String("out", "", "path to generated image file (default ./<advisor id>.png)")
}

// portraitPrompt describes the illustration style shared by every advisor card.
func portraitPrompt(advisor diagnostic.Advisor) string {
	return fmt.Sprintf("Flat editorial illustration of a %s, shown from the shoulders up against a plain warm "+
		"background. No text, no logos. Context: %s", advisor.Title, advisor.Summary)
}

var Advisor = &cobra.Command{
	Use:   "advisor [id]",
	Short: "Generate an advisor portrait",
	Long:  `Generates the portrait shown on an advisor match card with Dall-E`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, ok := diagnostic.AdvisorByID(args[0])
		if !ok {
			return errors.New("unknown advisor " + args[0])
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return errors.Wrap(err, "invalid out flag")
		}
		if outPath == "" {
			outPath = advisor.ID + ".png"
		}

		c := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
		request := openai.ImageRequest{
			Model:          openai.CreateImageModelDallE3,
			Prompt:         portraitPrompt(advisor),
			Size:           openai.CreateImageSize1024x1024,
			ResponseFormat: openai.CreateImageResponseFormatB64JSON,
			N:              1,
		}
		response, err := c.CreateImage(cmd.Context(), request)
		if err != nil {
			return errors.Wrap(err, "create image")
		}
		if len(response.Data) == 0 {
			return errors.New("no image in response")
		}

		imgBytes, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
		if err != nil {
			return errors.Wrap(err, "base64 decode")
		}
		imgData, err := png.Decode(bytes.NewReader(imgBytes))
		if err != nil {
			return errors.Wrap(err, "png decode")
		}

		file, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "create file")
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)

		if err = png.Encode(file, imgData); err != nil {
			return errors.Wrap(err, "png encode")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "The portrait of %s was saved as %s\n", advisor.Title, outPath)
		return nil
	},
}
