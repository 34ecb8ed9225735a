package services

import (
	"github.com/guraspy/personalized-workout-api/models"

	"gorm.io/datatypes"
)

func muscles(m ...string) datatypes.JSONSlice[string] { return datatypes.JSONSlice[string](m) }

// DefaultExercises is the starter library loaded by cmd/seed.
func DefaultExercises() []models.Exercise {
	return []models.Exercise{
		{Name: "Push-up", Description: "A classic bodyweight exercise.", Instructions: "Keep a straight line from head to heels and lower your chest to just above the floor.", TargetMuscles: muscles("Chest", "Shoulders", "Triceps"), Equipment: "None"},
		{Name: "Squat", Description: "A fundamental lower body exercise.", Instructions: "Sit the hips back and down until thighs are parallel, then drive up through the heels.", TargetMuscles: muscles("Quadriceps", "Glutes", "Hamstrings"), Equipment: "None"},
		{Name: "Pull-up", Description: "An upper body exercise targeting the back.", Instructions: "Hang with arms straight and pull until the chin clears the bar.", TargetMuscles: muscles("Back", "Biceps"), Equipment: "Pull-up bar"},
		{Name: "Plank", Description: "An isometric core strength exercise.", Instructions: "Hold a forearm push-up position with the core braced.", TargetMuscles: muscles("Core", "Abdominals"), Equipment: "None"},
		{Name: "Lunge", Description: "A single-leg bodyweight exercise.", Instructions: "Step forward and lower the back knee toward the floor, then push back to standing.", TargetMuscles: muscles("Quadriceps", "Glutes"), Equipment: "None"},
		{Name: "Dumbbell Bench Press", Description: "Chest press using dumbbells.", Instructions: "Lie on the bench and press the dumbbells up from chest level.", TargetMuscles: muscles("Chest", "Shoulders", "Triceps"), Equipment: "Dumbbells, Bench"},
		{Name: "Barbell Deadlift", Description: "A full-body compound lift.", Instructions: "Hinge at the hips with a flat back and stand up with the bar close to the legs.", TargetMuscles: muscles("Back", "Glutes", "Hamstrings"), Equipment: "Barbell"},
		{Name: "Overhead Press", Description: "A shoulder strength exercise.", Instructions: "Press the weight from the shoulders to overhead lockout.", TargetMuscles: muscles("Shoulders", "Triceps"), Equipment: "Barbell/Dumbbells"},
		{Name: "Bent-Over Row", Description: "A back-strengthening exercise.", Instructions: "Hinge forward and row the weight to the lower ribs.", TargetMuscles: muscles("Back", "Biceps"), Equipment: "Barbell/Dumbbells"},
		{Name: "Leg Press", Description: "A machine-based lower body exercise.", Instructions: "Lower the sled under control and press it away without locking the knees.", TargetMuscles: muscles("Quadriceps", "Glutes"), Equipment: "Leg Press Machine"},
		{Name: "Bicep Curl", Description: "An isolation exercise for the biceps.", Instructions: "Curl the weight up keeping the elbows pinned to your sides.", TargetMuscles: muscles("Biceps"), Equipment: "Dumbbells/Barbell"},
		{Name: "Tricep Extension", Description: "An isolation exercise for the triceps.", Instructions: "Extend the elbows fully while keeping the upper arms still.", TargetMuscles: muscles("Triceps"), Equipment: "Dumbbells/Cable Machine"},
		{Name: "Lat Pulldown", Description: "A machine exercise for the back.", Instructions: "Pull the bar to the upper chest while leaning back slightly.", TargetMuscles: muscles("Back", "Biceps"), Equipment: "Lat Pulldown Machine"},
		{Name: "Calf Raise", Description: "An exercise for strengthening the calves.", Instructions: "Rise onto the balls of the feet and lower slowly.", TargetMuscles: muscles("Calves"), Equipment: "None/Weights"},
		{Name: "Russian Twist", Description: "A core exercise for the obliques.", Instructions: "Sit with feet raised and rotate the torso side to side.", TargetMuscles: muscles("Core", "Obliques"), Equipment: "None/Weight"},
		{Name: "Burpee", Description: "A full-body calisthenics exercise.", Instructions: "Squat, kick back to a plank, return and jump.", TargetMuscles: muscles("Full Body", "Cardio"), Equipment: "None"},
		{Name: "Kettlebell Swing", Description: "A ballistic exercise for power.", Instructions: "Hinge and snap the hips forward to swing the bell to chest height.", TargetMuscles: muscles("Glutes", "Hamstrings", "Back"), Equipment: "Kettlebell"},
		{Name: "Hanging Leg Raise", Description: "An advanced core exercise.", Instructions: "Hang from the bar and raise straight legs to hip height.", TargetMuscles: muscles("Core", "Abdominals"), Equipment: "Pull-up bar"},
		{Name: "Running", Description: "Cardiovascular exercise.", Instructions: "Run at a conversational pace.", TargetMuscles: muscles("Cardio", "Legs"), Equipment: "None"},
		{Name: "Cycling", Description: "Low-impact cardiovascular exercise.", Instructions: "Pedal at a steady cadence.", TargetMuscles: muscles("Cardio", "Legs"), Equipment: "Bicycle/Stationary Bike"},
	}
}
