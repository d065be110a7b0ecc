package featuretour_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/petrijr/featuretour"
	"github.com/petrijr/featuretour/pkg/api"
)

// Example_tourBuilder demonstrates defining a tour and walking through it
// with a headless session.
func Example_tourBuilder() {
	ctx := context.Background()

	tour, err := featuretour.New("Introduction").
		Step("openButton", "Open", "Opens a document", featuretour.WithPlacement(featuretour.PlacementBottomLeft)).
		Step("saveButton", "Save", "Saves the document").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	session := featuretour.NewSession(featuretour.SessionConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	session.Navigator.ForStep("saveButton").AttachDoable(func(ctx context.Context, step featuretour.Step) {
		fmt.Println("entering", step.ElementID)
	})

	if err := session.Start(ctx, tour); err != nil {
		log.Fatal(err)
	}
	step, _ := session.Navigator.CurrentStep()
	fmt.Println("current:", step.ElementID)

	_ = session.Navigator.MoveNext(ctx)
	_ = session.Navigator.MoveNext(ctx)

	run, _ := session.Navigator.Run()
	fmt.Println(run.Status)
	// Output:
	// current: openButton
	// entering saveButton
	// COMPLETED
}

// Example_recorder demonstrates exporting recorded steps as a JSON tour
// document.
func Example_recorder() {
	ctx := context.Background()
	session := featuretour.NewSession(featuretour.SessionConfig{})

	if _, err := session.Recorder.AddManualStep(ctx, api.StepInput{Header: "Welcome", Content: "Start here"}); err != nil {
		log.Fatal(err)
	}
	out, err := session.Recorder.GenerateData("Intro", "intro")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
	// Output:
	// {
	//   "tourId": "intro",
	//   "tourName": "Intro",
	//   "showNextButtonDefault": true,
	//   "steps": [
	//     {
	//       "elementId": "Element1",
	//       "header": "Welcome",
	//       "content": "Start here",
	//       "placement": "TopCenter"
	//     }
	//   ]
	// }
}
