// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package skill

import (
	"fmt"

	"github.com/curioswitch/souschef/internal/alexa"
	"github.com/curioswitch/souschef/internal/souschefdb"
)

func welcomeSpeech() alexa.Speech {
	return alexa.Speech{
		Title:    "Welcome to Sous Chef",
		Text:     "Welcome to Sous Chef. Try saying Start Cooking",
		Reprompt: "Try saying Start Cooking",
	}
}

func startSpeech(meal souschefdb.MealType, recipeName string) alexa.Speech {
	return alexa.Speech{
		Title:    "Success",
		Text:     fmt.Sprintf("Ok! For %s we're making %s. Say next to get the first step", meal, recipeName),
		Reprompt: "Say next to get the first step",
	}
}

func askMealSpeech(suggestion souschefdb.MealType) alexa.Speech {
	return alexa.Speech{
		Title:    "Which Meal",
		Text:     fmt.Sprintf("Which meal are you cooking? You can say breakfast, lunch or dinner, for example Start Cooking %s.", suggestion),
		Reprompt: "Which meal are you cooking? Breakfast, lunch or dinner?",
	}
}

func nothingPlannedSpeech(meal souschefdb.MealType) alexa.Speech {
	return alexa.Speech{
		Title:    "Failure",
		Text:     fmt.Sprintf("Sorry, there is nothing planned for %s today. Try another meal.", meal),
		Reprompt: "Which meal are you cooking?",
	}
}

func stepSpeech(text string) alexa.Speech {
	return alexa.Speech{
		Title: "Success",
		Text:  text,
	}
}

func noRecipeSpeech() alexa.Speech {
	return alexa.Speech{
		Title: "Failure",
		Text:  "Sorry, there is no ongoing recipe. Try saying Start Cooking.",
	}
}

func noStepsSpeech() alexa.Speech {
	return alexa.Speech{
		Title: "Failure",
		Text:  "Sorry, this recipe doesn't have any steps.",
	}
}

func recipeEndSpeech() alexa.Speech {
	return alexa.Speech{
		Title:      "Bon Appetit",
		Text:       "Enjoy your food!",
		EndSession: true,
	}
}

func lastStepSpeech(step string) alexa.Speech {
	return alexa.Speech{
		Title:      "Bon Appetit",
		Text:       step + " That was the last step. Enjoy your food!",
		EndSession: true,
	}
}

func ingredientsSpeech(list string) alexa.Speech {
	return alexa.Speech{
		Title: "Ingredients",
		Text:  list,
	}
}

func noIngredientsSpeech() alexa.Speech {
	return alexa.Speech{
		Title: "Ingredients",
		Text:  "This recipe doesn't list any ingredients.",
	}
}

func progressSavedSpeech() alexa.Speech {
	return alexa.Speech{
		Title:      "Progress Saved",
		Text:       "Ok, I saved your progress. Say next step when you're ready to continue.",
		EndSession: true,
	}
}

func goodbyeSpeech() alexa.Speech {
	return alexa.Speech{
		Title:      "Goodbye",
		Text:       "Goodbye!",
		EndSession: true,
	}
}
